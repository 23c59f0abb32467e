// Package bridge provides the Agent, a single bridge instance tying a catalog to
// its registry, handle table and dispatcher.
//
//	agent := bridge.New(cat, bridge.DefaultOptions())
//	_ = agent.Handles().Insert(13, "printing something")
//	id, _ := agent.ResolveStatic("crosslang.MethodInvocationAgent", "ByteFunction")
//	v, err := agent.InvokeStatic(ctx, id, value.Ref(13))
package bridge
