package mesp

import "errors"

// ErrMalformedFrame is returned when the input cannot be parsed as a
// complete, well-formed MESP value: a missing CRLF, a BulkString
// shorter than its declared length, or an unrecognized leading byte.
var ErrMalformedFrame = errors.New("mesp: malformed frame")
