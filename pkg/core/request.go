package bpatch

// DataType selects the width and interpretation of a patch payload. The
// numeric value of a non-string type is its encoded width in bytes.
type DataType int

const (
	String DataType = 0
	Byte   DataType = 1
	Word   DataType = 2
	DWord  DataType = 4
	QWord  DataType = 8
)

func (t DataType) String() string {
	switch t {
	case String:
		return "str"
	case Word:
		return "dw"
	case DWord:
		return "dd"
	case QWord:
		return "dq"
	default:
		return "db"
	}
}

// Request describes a single patch operation. It is built once from the
// resolved command line, before any I/O happens, and never mutated.
type Request struct {
	File   string
	Offset uint64
	Type   DataType
	Length uint64 // payload length for String, ignored otherwise
	Pad    byte   // filler for String payloads shorter than Length
	Data   string // raw data, already escape-processed
}
