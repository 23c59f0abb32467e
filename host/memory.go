package host

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/callbridge"
	"github.com/wippyai/callbridge/errors"
)

// Memory adapts a guest's linear memory to callbridge.Memory.
type Memory struct {
	Mem api.Memory
}

// WrapMemory returns the guest memory of mod, or nil if it exports none.
func WrapMemory(mem api.Memory) callbridge.Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem}
}

// Read reads bytes from guest memory.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(nil, offset, length)
	}
	return data, nil
}

// Write writes bytes to guest memory.
func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(nil, offset, uint32(len(data)))
	}
	return nil
}
