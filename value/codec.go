package value

import (
	"fmt"
	"math"
	"reflect"

	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/handle"
)

var (
	charType    = reflect.TypeFor[Char]()
	handleType  = reflect.TypeFor[handle.Handle]()
	float32Type = reflect.TypeFor[float32]()
)

// SlotKind returns the tag a parameter of type t accepts.
// Named types follow their underlying kind, except Char which is matched first.
// Every type outside the scalar set is passed by reference.
func SlotKind(t reflect.Type) Kind {
	if t == charType {
		return KindChar
	}
	switch t.Kind() {
	case reflect.Uint8, reflect.Int8:
		return KindByte
	case reflect.Int16, reflect.Uint16:
		return KindShort
	case reflect.Int32, reflect.Uint32:
		return KindInt
	case reflect.Int64, reflect.Uint64:
		return KindLong
	case reflect.Bool:
		return KindBool
	case reflect.Float32:
		return KindFloat
	case reflect.Float64:
		return KindDouble
	default:
		return KindReference
	}
}

// Decode converts v into a value assignable to a parameter of type t.
// References are resolved through table; a nil table resolves nothing.
func Decode(v Value, t reflect.Type, table handle.Lookup) (reflect.Value, error) {
	want := SlotKind(t)
	if v.kind != want {
		err := errors.TypeMismatch(errors.PhaseDecode, nil, t.String(), v.kind.String())
		err.Detail = "slot takes " + want.String()
		return reflect.Value{}, err
	}

	if want == KindReference {
		return decodeRef(v, t, table)
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int8:
		out.SetInt(int64(int8(v.bits)))
	case reflect.Int16:
		out.SetInt(int64(int16(v.bits)))
	case reflect.Int32:
		out.SetInt(int64(int32(v.bits)))
	case reflect.Int64:
		out.SetInt(int64(v.bits))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out.SetUint(v.bits)
	case reflect.Bool:
		out.SetBool(v.bits != 0)
	case reflect.Float32:
		// Set through Convert; SetFloat widens to float64 and quiets signaling NaNs.
		out.Set(reflect.ValueOf(math.Float32frombits(uint32(v.bits))).Convert(t))
	case reflect.Float64:
		out.SetFloat(math.Float64frombits(v.bits))
	}
	return out, nil
}

func decodeRef(v Value, t reflect.Type, table handle.Lookup) (reflect.Value, error) {
	h := v.bits
	if table == nil {
		return reflect.Value{}, errors.UnresolvedHandle(nil, h)
	}
	obj, ok := table.Get(handle.Handle(h))
	if !ok {
		return reflect.Value{}, errors.UnresolvedHandle(nil, h)
	}

	rv := reflect.ValueOf(obj)
	if !rv.Type().AssignableTo(t) {
		err := errors.TypeMismatch(errors.PhaseDecode, nil, t.String(), KindReference.String())
		err.Value = h
		err.Detail = fmt.Sprintf("handle %d holds %s", h, rv.Type())
		return reflect.Value{}, err
	}
	if rv.Type() != t {
		// interface slots
		conv := reflect.New(t).Elem()
		conv.Set(rv)
		return conv, nil
	}
	return rv, nil
}

// Encode converts a Go result into a tagged value.
// Nil results become None. Object results fail with not_implemented and
// scalars without a tag fail with unsupported_return_type.
func Encode(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Value{}, nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Value{}, nil
		}
		return Encode(rv.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return Value{}, nil
		}
		return Value{}, errors.NotImplemented(rv.Type().String())
	case reflect.Struct, reflect.Array, reflect.String:
		return Value{}, errors.NotImplemented(rv.Type().String())
	}

	if rv.Type() == charType {
		return Character(Char(rv.Uint())), nil
	}

	switch rv.Kind() {
	case reflect.Uint8:
		return Byte(uint8(rv.Uint())), nil
	case reflect.Int8:
		return Byte(uint8(int8(rv.Int()))), nil
	case reflect.Int16:
		return Short(int16(rv.Int())), nil
	case reflect.Uint16:
		return Short(int16(uint16(rv.Uint()))), nil
	case reflect.Int32:
		return Int(int32(rv.Int())), nil
	case reflect.Uint32:
		return Int(int32(uint32(rv.Uint()))), nil
	case reflect.Int64:
		return Long(rv.Int()), nil
	case reflect.Uint64:
		return Long(int64(rv.Uint())), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Float32:
		return Float(rv.Convert(float32Type).Interface().(float32)), nil
	case reflect.Float64:
		return Double(rv.Float()), nil
	}

	return Value{}, errors.UnsupportedReturn(errors.PhaseEncode, rv.Type().String())
}

// Of encodes a Go value. A handle.Handle becomes a Reference so that
// Of(v.Interface()) == v holds for every kind.
func Of(x any) (Value, error) {
	if h, ok := x.(handle.Handle); ok {
		return Ref(h), nil
	}
	return Encode(reflect.ValueOf(x))
}

// MustOf is like Of but panics on error.
func MustOf(x any) Value {
	v, err := Of(x)
	if err != nil {
		panic(err)
	}
	return v
}
