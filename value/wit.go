package value

import (
	"fmt"

	"go.bytecodealliance.org/wit"
)

// WitType returns the WIT type carrying k. References travel as their u64 handle.
// None has no WIT type and returns nil.
func (k Kind) WitType() wit.Type {
	switch k {
	case KindByte:
		return wit.U8{}
	case KindShort:
		return wit.S16{}
	case KindInt:
		return wit.S32{}
	case KindLong:
		return wit.S64{}
	case KindBool:
		return wit.Bool{}
	case KindFloat:
		return wit.F32{}
	case KindDouble:
		return wit.F64{}
	case KindChar:
		return wit.Char{}
	case KindReference:
		return wit.U64{}
	default:
		return nil
	}
}

// WitName returns the WIT spelling used when rendering signatures.
// References are rendered through the handle alias.
func (k Kind) WitName() string {
	if k == KindReference {
		return "handle"
	}
	return WitTypeName(k.WitType())
}

// WitTypeName renders a WIT type name.
func WitTypeName(t wit.Type) string {
	if t == nil {
		return "_"
	}
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// KindForWit maps a primitive WIT type back to the kind carrying it.
func KindForWit(t wit.Type) (Kind, bool) {
	switch t.(type) {
	case wit.U8, wit.S8:
		return KindByte, true
	case wit.S16, wit.U16:
		return KindShort, true
	case wit.S32, wit.U32:
		return KindInt, true
	case wit.S64:
		return KindLong, true
	case wit.U64:
		return KindReference, true
	case wit.Bool:
		return KindBool, true
	case wit.F32:
		return KindFloat, true
	case wit.F64:
		return KindDouble, true
	case wit.Char:
		return KindChar, true
	}
	return KindNone, false
}
