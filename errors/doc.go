// Package errors provides the closed error taxonomy of the bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Every Kind has a stable int32 Code, which is what crosses the boundary inside a
// result envelope.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("arg[1]").
//		GoType("int32").
//		Tag("double").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnresolvedHandle([]string{"arg[0]"}, 13)
//	err := errors.ArityMismatch(1, 0, false)
//
// errors.CodeOf maps any error to a Code. Errors that did not originate in this
// package are treated as failures of the invoked target.
package errors
