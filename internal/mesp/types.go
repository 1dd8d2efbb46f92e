// Package mesp implements the Memify Serialization Protocol: a RESP
// dialect with one addition, a 32-bit Float type. It is a small,
// hand-written recursive-descent parser and serializer — no pack
// example carries a RESP-family codec, so this is grounded directly
// on spec.md's wire table rather than adapted from an existing file.
package mesp

// Type identifies one of the six MESP wire types, tagged by its
// leading byte on the wire.
type Type byte

const (
	SimpleString Type = '+'
	Error        Type = '-'
	Integer      Type = ':'
	Float        Type = '#'
	BulkString   Type = '$'
	Array        Type = '*'
)

// NilBulkSentinel is what a parsed nil BulkString's payload reads as.
// A caller constructing a nil BulkString (IsNil: true) gets the wire
// bytes "$-1\r\n"; parsing those bytes back does not reproduce
// IsNil — it produces an ordinary BulkString carrying this literal
// sentinel text, per the codec's documented round-trip exception.
const NilBulkSentinel = "nil"

// Value is a single parsed or to-be-serialized MESP object. Only the
// fields relevant to Type are meaningful; the rest are zero.
type Value struct {
	Type Type

	Str   string  // SimpleString, Error
	Int   int64   // Integer
	Float float32 // Float

	Bulk  []byte // BulkString payload; nil only when IsNil is set
	IsNil bool   // BulkString: true means "serialize as $-1\r\n"

	Array []Value // Array elements
}

// Simple builds a SimpleString value.
func Simple(s string) Value { return Value{Type: SimpleString, Str: s} }

// Err builds an Error value.
func Err(s string) Value { return Value{Type: Error, Str: s} }

// Int64 builds an Integer value.
func Int64(n int64) Value { return Value{Type: Integer, Int: n} }

// Float32 builds a Float value.
func Float32(f float32) Value { return Value{Type: Float, Float: f} }

// Bulk builds a BulkString value from bytes.
func Bulk(b []byte) Value { return Value{Type: BulkString, Bulk: b} }

// BulkFromString builds a BulkString value from a string.
func BulkFromString(s string) Value { return Value{Type: BulkString, Bulk: []byte(s)} }

// NilBulk builds the nil BulkString sentinel, serialized as "$-1\r\n".
func NilBulk() Value { return Value{Type: BulkString, IsNil: true} }

// Arr builds an Array value. The element slice is always non-nil so
// that Arr() round-trips through Parse's always-allocated slice.
func Arr(vs ...Value) Value {
	elems := make([]Value, len(vs))
	copy(elems, vs)
	return Value{Type: Array, Array: elems}
}

// IsString reports whether v is a BulkString (the shape command
// handlers validate arguments against almost everywhere).
func (v Value) IsString() bool { return v.Type == BulkString && !v.IsNil }
