package callbridge

// Memory is caller-owned memory addressed by 32-bit offsets.
// Offsets and lengths come from an untrusted caller; implementations must
// bounds-check every access and report failures as errors.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}
