// Package registry turns resolved catalog targets into opaque 64-bit identifiers.
//
// Static members and instance methods live in two independent spaces. Identifiers
// are drawn uniformly at random and are never reused while the registry lives;
// entries are never removed.
package registry
