package value

import (
	"fmt"
	"math"

	"github.com/wippyai/callbridge/handle"
)

// Kind is the discriminant of a tagged value. Values are stable on the wire.
type Kind uint8

const (
	KindNone Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindBool
	KindFloat
	KindDouble
	KindChar
	KindReference
)

var kindNames = [...]string{
	KindNone:      "none",
	KindByte:      "byte",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindBool:      "bool",
	KindFloat:     "float",
	KindDouble:    "double",
	KindChar:      "char",
	KindReference: "reference",
}

// payload width in bytes per kind
var kindWidths = [...]uint8{
	KindNone:      0,
	KindByte:      1,
	KindShort:     2,
	KindInt:       4,
	KindLong:      8,
	KindBool:      1,
	KindFloat:     4,
	KindDouble:    8,
	KindChar:      2,
	KindReference: 8,
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k <= KindReference
}

// Primitive reports whether k is a scalar kind, excluding None and Reference.
func (k Kind) Primitive() bool {
	return k >= KindByte && k <= KindChar
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) mask() uint64 {
	w := kindWidths[k]
	if w >= 8 {
		return math.MaxUint64
	}
	return 1<<(8*uint64(w)) - 1
}

// Char is a UTF-16 code unit. Parameters of this type take KindChar values.
type Char uint16

// Value is a tagged scalar or handle.
// Fields are unexported so the tag always matches the payload; the zero Value is None.
// Values are comparable with ==.
type Value struct {
	bits uint64
	kind Kind
}

// None returns the value marking the absence of a result.
func None() Value { return Value{} }

// Byte returns an 8-bit value.
func Byte(v uint8) Value { return Value{kind: KindByte, bits: uint64(v)} }

// Short returns a 16-bit value.
func Short(v int16) Value { return Value{kind: KindShort, bits: uint64(uint16(v))} }

// Int returns a 32-bit value.
func Int(v int32) Value { return Value{kind: KindInt, bits: uint64(uint32(v))} }

// Long returns a 64-bit value.
func Long(v int64) Value { return Value{kind: KindLong, bits: uint64(v)} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, bits: 1}
	}
	return Value{kind: KindBool}
}

// Float returns a 32-bit floating point value.
func Float(v float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }

// Double returns a 64-bit floating point value.
func Double(v float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(v)} }

// Character returns a UTF-16 code unit value.
func Character(c Char) Value { return Value{kind: KindChar, bits: uint64(c)} }

// Ref returns a value referring to an entry of a handle table.
func Ref(h handle.Handle) Value { return Value{kind: KindReference, bits: uint64(h)} }

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) AsByte() (uint8, bool) {
	return uint8(v.bits), v.kind == KindByte
}

func (v Value) AsShort() (int16, bool) {
	return int16(v.bits), v.kind == KindShort
}

func (v Value) AsInt() (int32, bool) {
	return int32(v.bits), v.kind == KindInt
}

func (v Value) AsLong() (int64, bool) {
	return int64(v.bits), v.kind == KindLong
}

func (v Value) AsBool() (bool, bool) {
	return v.bits != 0, v.kind == KindBool
}

func (v Value) AsFloat() (float32, bool) {
	return math.Float32frombits(uint32(v.bits)), v.kind == KindFloat
}

func (v Value) AsDouble() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == KindDouble
}

func (v Value) AsChar() (Char, bool) {
	return Char(v.bits), v.kind == KindChar
}

func (v Value) AsRef() (handle.Handle, bool) {
	return handle.Handle(v.bits), v.kind == KindReference
}

// Interface returns the natural Go value of v: uint8, int16, int32, int64, bool,
// float32, float64, Char, handle.Handle, or nil for None.
func (v Value) Interface() any {
	switch v.kind {
	case KindByte:
		return uint8(v.bits)
	case KindShort:
		return int16(v.bits)
	case KindInt:
		return int32(v.bits)
	case KindLong:
		return int64(v.bits)
	case KindBool:
		return v.bits != 0
	case KindFloat:
		return math.Float32frombits(uint32(v.bits))
	case KindDouble:
		return math.Float64frombits(v.bits)
	case KindChar:
		return Char(v.bits)
	case KindReference:
		return handle.Handle(v.bits)
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindChar:
		return fmt.Sprintf("char(%q)", rune(v.bits))
	default:
		return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
	}
}
