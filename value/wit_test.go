package value

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestKind_WitType(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindByte, "u8"},
		{KindShort, "s16"},
		{KindInt, "s32"},
		{KindLong, "s64"},
		{KindBool, "bool"},
		{KindFloat, "f32"},
		{KindDouble, "f64"},
		{KindChar, "char"},
		{KindReference, "u64"},
	}
	for _, tt := range tests {
		if got := WitTypeName(tt.kind.WitType()); got != tt.want {
			t.Errorf("%s: WitTypeName = %q, want %q", tt.kind, got, tt.want)
		}
		back, ok := KindForWit(tt.kind.WitType())
		if !ok || back != tt.kind {
			t.Errorf("%s: KindForWit = %v, %v", tt.kind, back, ok)
		}
	}

	if KindNone.WitType() != nil {
		t.Error("None has no WIT type")
	}
	if KindReference.WitName() != "handle" {
		t.Errorf("reference WitName = %q", KindReference.WitName())
	}
	if _, ok := KindForWit(wit.String{}); ok {
		t.Error("string has no kind")
	}
}
