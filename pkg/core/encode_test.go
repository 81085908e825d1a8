package bpatch

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"strconv"
	"testing"
)

func TestInteger(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"2", 2},
		{"544", 544},
		{"  42", 42},
		{"\t-5", -5},
		{"+7", 7},
		{"-0", 0},
		{"12abc", 12},
		{"abc", 0},
		{"-", 0},
		{"- 1", 0},
		{"0x10", 0},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"99999999999999999999", math.MaxInt64},
		{"-99999999999999999999", math.MinInt64},
	} {
		assert.Equal(t, tc.want, Integer(tc.in), "Integer(%q)", tc.in)
	}
}

func TestEncodeNumeric(t *testing.T) {
	for _, tc := range []struct {
		name string
		typ  DataType
		data string
		want []byte
	}{
		{"byte", Byte, "2", []byte{0x02}},
		{"byte truncates high bits", Byte, "258", []byte{0x02}},
		{"word", Word, "2", []byte{0x02, 0x00}},
		{"word max", Word, "65535", []byte{0xff, 0xff}},
		{"word truncates high bits", Word, "65538", []byte{0x02, 0x00}},
		{"dword", DWord, "305419896", []byte{0x78, 0x56, 0x34, 0x12}},
		{"qword", QWord, "81985529216486895", []byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01}},
		{"negative byte", Byte, "-1", []byte{0xff}},
		{"negative word", Word, "-2", []byte{0xfe, 0xff}},
		{"malformed is zero", DWord, "junk", []byte{0x00, 0x00, 0x00, 0x00}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Request{Type: tc.typ, Data: tc.data}.Encode())
		})
	}
}

// The low bytes of the parsed value must survive encoding for every width,
// including values that do not fit the width.
func TestEncodeNumericLowBytes(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, 255, 256, 65535, 65536, -123456789, math.MaxInt64, math.MinInt64}
	for _, typ := range []DataType{Byte, Word, DWord, QWord} {
		for _, v := range values {
			buf := Request{Type: typ, Data: strconv.FormatInt(v, 10)}.Encode()
			require.Len(t, buf, int(typ))

			var got uint64
			for i := len(buf) - 1; i >= 0; i-- {
				got = got<<8 | uint64(buf[i])
			}
			want := uint64(v)
			if width := uint(typ) * 8; width < 64 {
				want &= 1<<width - 1
			}
			assert.Equal(t, want, got, "type %s value %d", typ, v)
		}
	}
}

func TestEncodeString(t *testing.T) {
	for _, tc := range []struct {
		name string
		req  Request
		want []byte
	}{
		{"pads to length", Request{Type: String, Data: "ab", Length: 5, Pad: '.'}, []byte("ab...")},
		{"truncates to length", Request{Type: String, Data: "abcdef", Length: 3}, []byte("abc")},
		{"exact fit", Request{Type: String, Data: "abc", Length: 3}, []byte("abc")},
		{"zero length", Request{Type: String, Data: "abc", Length: 0}, []byte{}},
		{"zero pad by default", Request{Type: String, Data: "a", Length: 3}, []byte{'a', 0x00, 0x00}},
		{"default length keeps one byte", Request{Type: String, Data: "Hello", Length: 1}, []byte("H")},
		{"control characters pass through", Request{Type: String, Data: "a\r\n", Length: 3}, []byte{'a', 0x0d, 0x0a}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.req.Encode()
			require.Len(t, got, int(tc.req.Length))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "str", String.String())
	assert.Equal(t, "db", Byte.String())
	assert.Equal(t, "dw", Word.String())
	assert.Equal(t, "dd", DWord.String())
	assert.Equal(t, "dq", QWord.String())
}
