package mesp

import "strconv"

// Parse decodes exactly one MESP value from the front of input and
// reports how many bytes it consumed. It is not a streaming parser:
// callers must already hold a complete frame (the connection handler
// guarantees this via the length-prefixed wire framing before ever
// calling Parse).
func Parse(input []byte) (Value, int, error) {
	if len(input) == 0 {
		return Value{}, 0, ErrMalformedFrame
	}

	switch Type(input[0]) {
	case SimpleString:
		line, n, err := readLine(input[1:])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: SimpleString, Str: string(line)}, 1 + n, nil

	case Error:
		line, n, err := readLine(input[1:])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: Error, Str: string(line)}, 1 + n, nil

	case Integer:
		line, n, err := readLine(input[1:])
		if err != nil {
			return Value{}, 0, err
		}
		i, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Value{}, 0, ErrMalformedFrame
		}
		return Value{Type: Integer, Int: i}, 1 + n, nil

	case Float:
		line, n, err := readLine(input[1:])
		if err != nil {
			return Value{}, 0, err
		}
		f, err := strconv.ParseFloat(string(line), 32)
		if err != nil {
			return Value{}, 0, ErrMalformedFrame
		}
		return Value{Type: Float, Float: float32(f)}, 1 + n, nil

	case BulkString:
		return parseBulkString(input)

	case Array:
		return parseArray(input)

	default:
		return Value{}, 0, ErrMalformedFrame
	}
}

func parseBulkString(input []byte) (Value, int, error) {
	line, n, err := readLine(input[1:])
	if err != nil {
		return Value{}, 0, err
	}
	length, err := strconv.Atoi(string(line))
	if err != nil {
		return Value{}, 0, ErrMalformedFrame
	}

	pos := 1 + n

	if length == -1 {
		// Parsed-back nil: the documented exception to strict
		// round-trip equality. See types.go's NilBulkSentinel.
		return Value{Type: BulkString, Bulk: []byte(NilBulkSentinel)}, pos, nil
	}
	if length < 0 {
		return Value{}, 0, ErrMalformedFrame
	}

	if len(input) < pos+length+2 {
		return Value{}, 0, ErrMalformedFrame
	}
	data := input[pos : pos+length]
	tail := input[pos+length : pos+length+2]
	if tail[0] != '\r' || tail[1] != '\n' {
		return Value{}, 0, ErrMalformedFrame
	}

	return Value{Type: BulkString, Bulk: data}, pos + length + 2, nil
}

func parseArray(input []byte) (Value, int, error) {
	line, n, err := readLine(input[1:])
	if err != nil {
		return Value{}, 0, err
	}
	count, err := strconv.Atoi(string(line))
	if err != nil || count < 0 {
		return Value{}, 0, ErrMalformedFrame
	}

	pos := 1 + n
	elems := make([]Value, count)
	for i := 0; i < count; i++ {
		v, c, err := Parse(input[pos:])
		if err != nil {
			return Value{}, 0, err
		}
		elems[i] = v
		pos += c
	}

	return Value{Type: Array, Array: elems}, pos, nil
}

// readLine returns the bytes before the next CRLF in b, and the
// number of bytes consumed including the CRLF itself.
func readLine(b []byte) (line []byte, consumed int, err error) {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return b[:i], i + 2, nil
		}
	}
	return nil, 0, ErrMalformedFrame
}
