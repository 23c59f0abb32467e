package result

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/value"
)

// Status is the envelope discriminant.
type Status uint8

const (
	StatusOk Status = iota
	StatusErr
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusErr:
		return "err"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

const (
	// PayloadOffset is where the payload starts in both envelopes.
	PayloadOffset = 8
	// IDSize is the encoded size of an ID envelope.
	IDSize = PayloadOffset + 8
	// ValueSize is the encoded size of a Value envelope.
	ValueSize = PayloadOffset + value.Size
)

// ID is the outcome of a resolution: an identifier or an error code.
type ID struct {
	id     registry.ID
	code   errors.Code
	status Status
}

// OkID wraps a minted identifier.
func OkID(id registry.ID) ID {
	return ID{id: id, status: StatusOk}
}

// ErrID wraps an error code.
func ErrID(code errors.Code) ID {
	return ID{code: code, status: StatusErr}
}

// IDFrom builds the envelope for the return of a resolve call.
func IDFrom(id registry.ID, err error) ID {
	if err != nil {
		return ErrID(errors.CodeOf(err))
	}
	return OkID(id)
}

func (r ID) Ok() bool       { return r.status == StatusOk }
func (r ID) Status() Status { return r.status }

// ID returns the identifier; the second return is false for error envelopes.
func (r ID) ID() (registry.ID, bool) {
	return r.id, r.status == StatusOk
}

// Code returns the error code; the second return is false for success envelopes.
func (r ID) Code() (errors.Code, bool) {
	return r.code, r.status == StatusErr
}

func (r ID) String() string {
	if r.Ok() {
		return fmt.Sprintf("ok(%d)", int64(r.id))
	}
	return fmt.Sprintf("err(%s)", r.code)
}

// AppendBinary appends the IDSize-byte encoding of r to b.
func (r ID) AppendBinary(b []byte) ([]byte, error) {
	var buf [IDSize]byte
	buf[0] = byte(r.status)
	if r.Ok() {
		binary.LittleEndian.PutUint64(buf[PayloadOffset:], uint64(r.id))
	} else {
		binary.LittleEndian.PutUint32(buf[PayloadOffset:], uint32(r.code))
	}
	return append(b, buf[:]...), nil
}

// MarshalBinary returns the IDSize-byte encoding of r.
func (r ID) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, IDSize))
}

// UnmarshalID decodes an ID envelope.
func UnmarshalID(b []byte) (ID, error) {
	status, err := readStatus(b, IDSize)
	if err != nil {
		return ID{}, err
	}
	if status == StatusOk {
		return OkID(registry.ID(binary.LittleEndian.Uint64(b[PayloadOffset:]))), nil
	}
	return ErrID(errors.Code(int32(binary.LittleEndian.Uint32(b[PayloadOffset:])))), nil
}

// Value is the outcome of an invocation: a tagged value or an error code.
type Value struct {
	code   errors.Code
	value  value.Value
	status Status
}

// OkValue wraps a result value.
func OkValue(v value.Value) Value {
	return Value{value: v, status: StatusOk}
}

// ErrValue wraps an error code.
func ErrValue(code errors.Code) Value {
	return Value{code: code, status: StatusErr}
}

// ValueFrom builds the envelope for the return of an invoke call.
// A failed call never carries a payload.
func ValueFrom(v value.Value, err error) Value {
	if err != nil {
		return ErrValue(errors.CodeOf(err))
	}
	return OkValue(v)
}

func (r Value) Ok() bool       { return r.status == StatusOk }
func (r Value) Status() Status { return r.status }

// Value returns the result; the second return is false for error envelopes.
func (r Value) Value() (value.Value, bool) {
	return r.value, r.status == StatusOk
}

// Code returns the error code; the second return is false for success envelopes.
func (r Value) Code() (errors.Code, bool) {
	return r.code, r.status == StatusErr
}

func (r Value) String() string {
	if r.Ok() {
		return fmt.Sprintf("ok(%s)", r.value)
	}
	return fmt.Sprintf("err(%s)", r.code)
}

// AppendBinary appends the ValueSize-byte encoding of r to b.
func (r Value) AppendBinary(b []byte) ([]byte, error) {
	var buf [PayloadOffset]byte
	buf[0] = byte(r.status)
	b = append(b, buf[:]...)
	if r.Ok() {
		return r.value.AppendBinary(b)
	}
	var code [value.Size]byte
	binary.LittleEndian.PutUint32(code[:], uint32(r.code))
	return append(b, code[:]...), nil
}

// MarshalBinary returns the ValueSize-byte encoding of r.
func (r Value) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, ValueSize))
}

// UnmarshalValue decodes a Value envelope.
func UnmarshalValue(b []byte) (Value, error) {
	status, err := readStatus(b, ValueSize)
	if err != nil {
		return Value{}, err
	}
	if status == StatusErr {
		return ErrValue(errors.Code(int32(binary.LittleEndian.Uint32(b[PayloadOffset:])))), nil
	}
	v, err := value.Unmarshal(b[PayloadOffset:ValueSize])
	if err != nil {
		return Value{}, err
	}
	return OkValue(v), nil
}

func readStatus(b []byte, size int) (Status, error) {
	if len(b) < size {
		return 0, errors.InvalidInput(errors.PhaseBoundary,
			fmt.Sprintf("envelope needs %d bytes, got %d", size, len(b)))
	}
	s := Status(b[0])
	if s != StatusOk && s != StatusErr {
		return 0, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Value(b[0]).
			Detail("unknown envelope status %d", b[0]).
			Build()
	}
	return s, nil
}
