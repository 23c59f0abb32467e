package boundary

import (
	"unicode/utf8"

	"github.com/wippyai/callbridge"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/result"
	"github.com/wippyai/callbridge/value"
)

const (
	// MaxNameLength bounds type and member names in bytes.
	MaxNameLength = 1024
	// MaxArgs bounds the number of tagged arguments per call.
	MaxArgs = 64
)

// ReadName reads a UTF-8 name of length bytes at ptr. A zero ptr is null.
func ReadName(mem callbridge.Memory, ptr, length uint32, path string) (string, error) {
	if mem == nil {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Detail("no caller memory").
			Build()
	}
	if ptr == 0 {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Detail("null pointer").
			Build()
	}
	if length == 0 {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Detail("empty name").
			Build()
	}
	if length > MaxNameLength {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Value(length).
			Detail("name length %d exceeds %d", length, MaxNameLength).
			Build()
	}

	data, err := mem.Read(ptr, length)
	if err != nil {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Cause(err).
			Detail("range [%d, +%d) out of bounds", ptr, length).
			Build()
	}
	if !utf8.Valid(data) {
		return "", errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Detail("name is not valid UTF-8").
			Build()
	}
	return string(data), nil
}

// ReadArgs reads count tagged values at ptr. A zero count never touches memory.
func ReadArgs(mem callbridge.Memory, ptr, count uint32) ([]value.Value, error) {
	if count == 0 {
		return nil, nil
	}
	if count > MaxArgs {
		return nil, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path("args").
			Value(count).
			Detail("%d arguments exceed %d", count, MaxArgs).
			Build()
	}
	if mem == nil || ptr == 0 {
		return nil, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path("args").
			Detail("null argument array with %d arguments", count).
			Build()
	}

	size := count * value.Size
	data, err := mem.Read(ptr, size)
	if err != nil {
		return nil, errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path("args").
			Cause(err).
			Detail("range [%d, +%d) out of bounds", ptr, size).
			Build()
	}
	args, err := value.UnmarshalSlice(data)
	if err != nil {
		return nil, err
	}
	return args, nil
}

// WriteArgs stores args at ptr in the tagged layout.
func WriteArgs(mem callbridge.Memory, ptr uint32, args []value.Value) error {
	return write(mem, ptr, "args", value.AppendSlice(nil, args))
}

// WriteID stores an ID envelope at ptr.
func WriteID(mem callbridge.Memory, ptr uint32, r result.ID) error {
	b, _ := r.MarshalBinary()
	return write(mem, ptr, "ret", b)
}

// WriteValue stores a Value envelope at ptr.
func WriteValue(mem callbridge.Memory, ptr uint32, r result.Value) error {
	b, _ := r.MarshalBinary()
	return write(mem, ptr, "ret", b)
}

func write(mem callbridge.Memory, ptr uint32, path string, b []byte) error {
	if mem == nil || ptr == 0 {
		return errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Detail("null pointer").
			Build()
	}
	if err := mem.Write(ptr, b); err != nil {
		return errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Path(path).
			Cause(err).
			Detail("range [%d, +%d) out of bounds", ptr, len(b)).
			Build()
	}
	return nil
}
