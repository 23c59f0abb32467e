// Package callbridge lets a caller outside the Go runtime invoke Go functions and
// methods through fixed-layout data only.
//
// A callable is resolved by name once and receives an opaque 64-bit identifier.
// Every later call passes that identifier plus a flat array of tagged values and
// gets back a tagged result wrapped in a result envelope.
//
// # Architecture Overview
//
//	callbridge/          Root package with the caller Memory interface
//	├── errors/          Closed error taxonomy and boundary error codes
//	├── value/           Tagged value type, binary layout, reflect codec
//	├── handle/          Handle table for object-typed arguments
//	├── catalog/         Static manifest of resolvable types and members
//	├── registry/        Identifier spaces for static and instance targets
//	├── invoke/          Dispatcher: decode, call, encode
//	├── result/          Result envelopes for identifiers and values
//	├── bridge/          Agent owning registry, handle table and dispatcher
//	├── boundary/        Entry table over untrusted caller memory
//	├── host/            wazero host module exposing the entry table
//	└── builtin/         Sample catalog used by the CLI and examples
//
// # Quick Start
//
//	cat := catalog.New()
//	err := cat.Type("demo.Math").
//	    Static("Add", func(a, b int32) int32 { return a + b }).
//	    Build()
//
//	agent := bridge.New(cat, bridge.DefaultOptions())
//	id, err := agent.ResolveStatic("demo.Math", "Add")
//	res, err := agent.InvokeStatic(ctx, id, value.Int(3), value.Int(2))
//	// res is value.Int(5)
//
// # Object Arguments
//
// Values outside the primitive set never cross the boundary directly. The host
// inserts them into the agent's handle table and the caller passes
// value.Ref(handle). Object-typed results are not supported and fail with
// not_implemented.
//
// # Thread Safety
//
// Catalog, registry and handle table are internally synchronized. Concurrent
// registrations never share an identifier.
package callbridge
