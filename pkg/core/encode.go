package bpatch

import (
	"encoding/binary"
	"strconv"
)

// Integer converts s to an int64 the way strtoll(3) does in base 10: leading
// whitespace is skipped, an optional sign is honored, and scanning stops at
// the first non-digit. Malformed input yields 0, and values beyond the int64
// range saturate at the nearest bound.
func Integer(s string) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	// Only a range error is possible here, and ParseInt clamps the
	// returned value to the nearest bound.
	v, _ := strconv.ParseInt(s[start:i], 10, 64)
	return v
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Encode produces the byte sequence the request writes. Numeric types take
// the low bytes of the parsed 64-bit value in little-endian order, so values
// wider than the requested type are silently truncated. The string type
// yields exactly Length bytes: Data is copied in and any remainder is filled
// with Pad.
func (r Request) Encode() []byte {
	if r.Type == String {
		buf := make([]byte, r.Length)
		if r.Pad != 0 {
			for i := range buf {
				buf[i] = r.Pad
			}
		}
		copy(buf, r.Data)
		return buf
	}

	v := uint64(Integer(r.Data))
	switch r.Type {
	case Word:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v))
		return buf
	case DWord:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return buf
	case QWord:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, v)
		return buf
	default:
		return []byte{byte(v)}
	}
}
