// Package catalog is the static manifest of types and members a caller may
// resolve by name.
//
// Members are declared up front through a builder:
//
//	cat := catalog.New()
//	err := cat.Type("demo.Math").
//		Module("demo").
//		Static("Add", func(a, b int32) int32 { return a + b }).
//		Instance(reflect.TypeFor[*Counter]()).
//		Build()
//
// Build validates every member and commits the type in one step. Lookups accept
// a qualified type name, "demo.Math, demo", whose module part must match the
// declared module.
//
// A static function may take a leading context.Context, which is supplied by the
// dispatcher and does not count toward the boundary arity. Results must be one of
// (), (T), (error) or (T, error).
package catalog
