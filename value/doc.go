// Package value implements the tagged value shared by arguments and results.
//
// A Value is one of a closed set of kinds: None, Byte, Short, Int, Long, Bool,
// Float, Double, Char and Reference. On the wire it occupies Size bytes: the tag
// at offset 0 and the payload union at PayloadOffset, little endian.
//
// Decode and Encode translate between values and Go through reflection. The slot
// kind of a parameter is derived from its Go type:
//
//	uint8, int8        Byte
//	int16, uint16      Short
//	int32, uint32      Int
//	int64, uint64      Long
//	bool               Bool
//	float32            Float
//	float64            Double
//	value.Char         Char
//	anything else      Reference (resolved through a handle table)
//
// Integers are reinterpreted bit for bit within one width; Byte 0xFF decodes into
// an int8 slot as -1. Values never widen or truncate across widths.
package value
