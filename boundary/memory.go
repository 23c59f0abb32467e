package boundary

import (
	"github.com/wippyai/callbridge/errors"
)

// SliceMemory is caller memory backed by a byte slice.
// Offset 0 is addressable; the entry table treats it as null by convention only.
type SliceMemory []byte

// Read returns a view of length bytes at offset.
func (m SliceMemory) Read(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m)) {
		return nil, errors.OutOfBounds(nil, offset, length)
	}
	return m[offset:end], nil
}

// Write copies data to offset.
func (m SliceMemory) Write(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(m)) {
		return errors.OutOfBounds(nil, offset, uint32(len(data)))
	}
	copy(m[offset:end], data)
	return nil
}
