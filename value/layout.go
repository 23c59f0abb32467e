package value

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/callbridge/errors"
)

const (
	// Size is the byte size of an encoded value.
	Size = 16
	// PayloadOffset is where the payload union starts; bytes 1..7 are padding.
	PayloadOffset = 8
)

// AppendBinary appends the 16-byte encoding of v to b.
func (v Value) AppendBinary(b []byte) ([]byte, error) {
	return appendValue(b, v), nil
}

// MarshalBinary returns the 16-byte encoding of v.
func (v Value) MarshalBinary() ([]byte, error) {
	return appendValue(make([]byte, 0, Size), v), nil
}

func appendValue(b []byte, v Value) []byte {
	var buf [Size]byte
	buf[0] = byte(v.kind)
	binary.LittleEndian.PutUint64(buf[PayloadOffset:], v.bits)
	return append(b, buf[:]...)
}

// Unmarshal decodes one value from the first Size bytes of b.
// Only the bytes of the tagged variant are read; the rest of the union is ignored.
func Unmarshal(b []byte) (Value, error) {
	if len(b) < Size {
		return Value{}, errors.InvalidInput(errors.PhaseBoundary,
			fmt.Sprintf("tagged value needs %d bytes, got %d", Size, len(b)))
	}
	kind := Kind(b[0])
	if !kind.Valid() {
		return Value{}, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Tag(kind.String()).
			Value(b[0]).
			Detail("unknown tag %d", b[0]).
			Build()
	}
	bits := binary.LittleEndian.Uint64(b[PayloadOffset:Size]) & kind.mask()
	if kind == KindBool && bits > 1 {
		return Value{}, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Tag(kind.String()).
			Value(bits).
			Detail("bool payload must be 0 or 1, got %d", bits).
			Build()
	}
	return Value{kind: kind, bits: bits}, nil
}

// AppendSlice appends the encodings of vs to b.
func AppendSlice(b []byte, vs []Value) []byte {
	for _, v := range vs {
		b = appendValue(b, v)
	}
	return b
}

// UnmarshalSlice decodes len(b)/Size consecutive values.
func UnmarshalSlice(b []byte) ([]Value, error) {
	if len(b)%Size != 0 {
		return nil, errors.InvalidInput(errors.PhaseBoundary,
			fmt.Sprintf("value array length %d is not a multiple of %d", len(b), Size))
	}
	out := make([]Value, len(b)/Size)
	for i := range out {
		v, err := Unmarshal(b[i*Size:])
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.WithPath(fmt.Sprintf("arg[%d]", i))
			}
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
