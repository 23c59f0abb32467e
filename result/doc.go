// Package result holds the envelopes returned across the boundary.
//
// Both envelopes start with a one-byte Status (0 ok, 1 err) followed by padding
// up to PayloadOffset. An ID envelope is IDSize bytes and carries an int64
// identifier; a Value envelope is ValueSize bytes and carries a 16-byte tagged
// value. Error envelopes carry an int32 errors.Code at PayloadOffset instead.
package result
