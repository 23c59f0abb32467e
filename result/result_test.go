package result

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/value"
)

func TestID_Ok(t *testing.T) {
	r := IDFrom(registry.ID(math.MinInt64), nil)
	if !r.Ok() {
		t.Fatal("expected ok envelope")
	}
	id, ok := r.ID()
	if !ok || id != math.MinInt64 {
		t.Fatalf("ID() = %d, %v", id, ok)
	}
	if _, ok := r.Code(); ok {
		t.Fatal("ok envelope has no code")
	}

	b, _ := r.MarshalBinary()
	if len(b) != IDSize || b[0] != 0 {
		t.Fatalf("layout = % x", b)
	}
	back, err := UnmarshalID(b)
	if err != nil || back != r {
		t.Fatalf("UnmarshalID = %v, %v", back, err)
	}
}

func TestID_Err(t *testing.T) {
	r := IDFrom(99, errors.NotFound("type", "demo.Nope"))
	if r.Ok() {
		t.Fatal("expected error envelope")
	}
	code, ok := r.Code()
	if !ok || code != errors.CodeTargetNotFound {
		t.Fatalf("Code() = %v, %v", code, ok)
	}
	if _, ok := r.ID(); ok {
		t.Fatal("error envelope has no identifier")
	}

	b, _ := r.MarshalBinary()
	want := []byte{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("layout = % x, want % x", b, want)
	}
	back, err := UnmarshalID(b)
	if err != nil || back != r {
		t.Fatalf("UnmarshalID = %v, %v", back, err)
	}
}

func TestValue_Ok(t *testing.T) {
	r := ValueFrom(value.Byte(5), nil)
	got, ok := r.Value()
	if !ok || got != value.Byte(5) {
		t.Fatalf("Value() = %v, %v", got, ok)
	}

	b, _ := r.MarshalBinary()
	if len(b) != ValueSize {
		t.Fatalf("encoded size %d", len(b))
	}
	if b[0] != 0 || b[PayloadOffset] != byte(value.KindByte) || b[PayloadOffset+value.PayloadOffset] != 5 {
		t.Fatalf("layout = % x", b)
	}
	back, err := UnmarshalValue(b)
	if err != nil || back != r {
		t.Fatalf("UnmarshalValue = %v, %v", back, err)
	}
}

func TestValue_Err(t *testing.T) {
	tests := []struct {
		err  error
		code errors.Code
	}{
		{errors.ArityMismatch(1, 0, false), errors.CodeArityMismatch},
		{errors.NotImplemented("*demo.Point"), errors.CodeNotImplemented},
		{stderrors.New("plain"), errors.CodeTargetFaulted},
	}
	for _, tt := range tests {
		r := ValueFrom(value.Int(1), tt.err)
		if _, ok := r.Value(); ok {
			t.Fatal("error envelope must not carry a payload")
		}
		code, _ := r.Code()
		if code != tt.code {
			t.Errorf("code = %v, want %v", code, tt.code)
		}
		b, _ := r.MarshalBinary()
		back, err := UnmarshalValue(b)
		if err != nil || back != r {
			t.Fatalf("UnmarshalValue = %v, %v", back, err)
		}
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	if _, err := UnmarshalID(make([]byte, IDSize-1)); errors.KindOf(err) != errors.KindInvalidInput {
		t.Fatalf("short ID: %v", err)
	}
	bad := make([]byte, ValueSize)
	bad[0] = 2
	if _, err := UnmarshalValue(bad); errors.KindOf(err) != errors.KindInvalidInput {
		t.Fatalf("bad status: %v", err)
	}
	bad[0] = 0
	bad[PayloadOffset] = 200
	if _, err := UnmarshalValue(bad); errors.KindOf(err) != errors.KindInvalidInput {
		t.Fatalf("bad tag: %v", err)
	}
}

func TestString(t *testing.T) {
	if s := OkID(7).String(); s != "ok(7)" {
		t.Errorf("OkID String = %q", s)
	}
	if s := ErrValue(errors.CodeTypeMismatch).String(); s != "err(type_mismatch)" {
		t.Errorf("ErrValue String = %q", s)
	}
	if s := OkValue(value.Int(5)).String(); s != "ok(int(5))" {
		t.Errorf("OkValue String = %q", s)
	}
}
