package mesp

import (
	"bytes"
	"strconv"
)

// Serialize encodes a Value into its MESP wire representation. It is
// the exact inverse of Parse for every well-typed value except the
// nil BulkString, which serializes to "$-1\r\n" regardless of
// IsNil's companion Bulk field.
func Serialize(v Value) []byte {
	switch v.Type {
	case SimpleString:
		return append([]byte{'+'}, appendCRLF([]byte(v.Str))...)
	case Error:
		return append([]byte{'-'}, appendCRLF([]byte(v.Str))...)
	case Integer:
		return append([]byte{':'}, appendCRLF([]byte(strconv.FormatInt(v.Int, 10)))...)
	case Float:
		return append([]byte{'#'}, appendCRLF([]byte(strconv.FormatFloat(float64(v.Float), 'g', -1, 32)))...)
	case BulkString:
		return serializeBulkString(v)
	case Array:
		return serializeArray(v)
	default:
		return nil
	}
}

func serializeBulkString(v Value) []byte {
	if v.IsNil {
		return []byte("$-1\r\n")
	}
	var buf bytes.Buffer
	buf.WriteByte('$')
	buf.WriteString(strconv.Itoa(len(v.Bulk)))
	buf.WriteString("\r\n")
	buf.Write(v.Bulk)
	buf.WriteString("\r\n")
	return buf.Bytes()
}

func serializeArray(v Value) []byte {
	var buf bytes.Buffer
	buf.WriteByte('*')
	buf.WriteString(strconv.Itoa(len(v.Array)))
	buf.WriteString("\r\n")
	for _, elem := range v.Array {
		buf.Write(Serialize(elem))
	}
	return buf.Bytes()
}

func appendCRLF(b []byte) []byte {
	return append(b, '\r', '\n')
}
