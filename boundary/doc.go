// Package boundary exposes an Agent to a caller that only shares raw memory.
//
// The caller passes pointers and lengths into its own memory. Every value is
// validated before use: null pointers, empty or oversized names, invalid UTF-8,
// out-of-bounds ranges, unknown tags and oversized argument arrays all yield an
// invalid_input error envelope. No entry point panics.
//
// Names are byte ranges; argument arrays are argsLen consecutive tagged values of
// value.Size bytes each. Envelopes are stored with WriteID and WriteValue.
package boundary
