// Package handle provides the table through which object values cross the boundary.
//
// A caller never sees a Go pointer. The host inserts a value under a handle of its
// choosing and the caller passes value.Ref(handle); the dispatcher resolves it here:
//
//	table := handle.NewTable()
//	_ = table.Insert(13, "printing something")
//
//	v, ok := table.Get(13)
//
// # Ownership
//
// The host owns handle lifetime. The bridge never removes entries and never reuses
// handles; the host must not reuse a handle while a call that references it is in
// flight. Values are not garbage collected until the host calls Remove or Clear.
package handle
