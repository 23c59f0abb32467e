// Package invoke dispatches calls to registered targets.
//
// A call moves through the stages Idle, ArgumentsDecoded, Invoked,
// ResultEncoded and Returned. Any failure moves it to Failed and the call
// returns the zero value together with an *errors.Error carrying the phase
// where it happened:
//
//	unknown identifier          target_not_found
//	receiver handle missing     unresolved_handle
//	wrong argument count        arity_mismatch
//	tag does not fit the slot   type_mismatch
//	argument handle missing     unresolved_handle
//	target panics or errors     target_faulted
//	object result               not_implemented
//	untagged scalar result      unsupported_return_type
package invoke
