// Package host exposes a bridge Agent to WebAssembly guests as a wazero host
// module named "callbridge".
//
// Guests import:
//
//	resolve_static(type_ptr, type_len, member_ptr, member_len, ret_ptr i32) -> i32
//	resolve_method(type_ptr, type_len, member_ptr, member_len, ret_ptr i32) -> i32
//	invoke_static(id i64, args_ptr, args_len, ret_ptr i32) -> i32
//	invoke_method(id i64, receiver i64, args_ptr, args_len, ret_ptr i32) -> i32
//
// Pointers address the guest's exported memory. Resolution stores a
// result.IDSize envelope at ret_ptr, invocation a result.ValueSize envelope.
// The i32 return is StatusWritten, or StatusBadReturn when ret_ptr is null or
// out of bounds.
package host
