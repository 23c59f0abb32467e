package boundary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/callbridge"
	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/result"
)

// ResolveFunc resolves the names at the given pointers.
type ResolveFunc func(mem callbridge.Memory, typePtr, typeLen, memberPtr, memberLen uint32) result.ID

// InvokeStaticFunc invokes a static target with argsLen tagged values at argsPtr.
type InvokeStaticFunc func(ctx context.Context, mem callbridge.Memory, id int64, argsPtr, argsLen uint32) result.Value

// InvokeMethodFunc invokes an instance target on the object at handle recv.
type InvokeMethodFunc func(ctx context.Context, mem callbridge.Memory, id int64, recv uint64, argsPtr, argsLen uint32) result.Value

// EntryTable is the set of entry points a foreign caller uses.
// Entries never panic; every failure comes back as an error envelope.
type EntryTable struct {
	ResolveStatic ResolveFunc
	ResolveMethod ResolveFunc
	InvokeStatic  InvokeStaticFunc
	InvokeMethod  InvokeMethodFunc
}

// NewEntryTable builds the entry table for agent. It holds no state besides
// the agent and may be rebuilt at any time.
func NewEntryTable(agent *bridge.Agent) *EntryTable {
	e := &entries{agent: agent, logger: agent.Logger()}
	return &EntryTable{
		ResolveStatic: e.resolveStatic,
		ResolveMethod: e.resolveMethod,
		InvokeStatic:  e.invokeStatic,
		InvokeMethod:  e.invokeMethod,
	}
}

type entries struct {
	agent  *bridge.Agent
	logger *zap.Logger
}

func (e *entries) resolveStatic(mem callbridge.Memory, typePtr, typeLen, memberPtr, memberLen uint32) result.ID {
	return e.resolve(mem, typePtr, typeLen, memberPtr, memberLen, e.agent.ResolveStatic)
}

func (e *entries) resolveMethod(mem callbridge.Memory, typePtr, typeLen, memberPtr, memberLen uint32) result.ID {
	return e.resolve(mem, typePtr, typeLen, memberPtr, memberLen, e.agent.ResolveMethod)
}

func (e *entries) resolve(mem callbridge.Memory, typePtr, typeLen, memberPtr, memberLen uint32,
	fn func(typeName, member string) (registry.ID, error)) (out result.ID) {
	defer func() {
		if r := recover(); r != nil {
			out = result.ErrID(e.recovered("resolve", r))
		}
	}()

	typeName, err := ReadName(mem, typePtr, typeLen, "type")
	if err != nil {
		return e.rejectID(err)
	}
	member, err := ReadName(mem, memberPtr, memberLen, "member")
	if err != nil {
		return e.rejectID(err)
	}
	return result.IDFrom(fn(typeName, member))
}

func (e *entries) invokeStatic(ctx context.Context, mem callbridge.Memory, id int64, argsPtr, argsLen uint32) (out result.Value) {
	defer func() {
		if r := recover(); r != nil {
			out = result.ErrValue(e.recovered("invoke_static", r))
		}
	}()

	args, err := ReadArgs(mem, argsPtr, argsLen)
	if err != nil {
		return e.rejectValue(err)
	}
	return result.ValueFrom(e.agent.InvokeStatic(ctx, registry.ID(id), args...))
}

func (e *entries) invokeMethod(ctx context.Context, mem callbridge.Memory, id int64, recv uint64, argsPtr, argsLen uint32) (out result.Value) {
	defer func() {
		if r := recover(); r != nil {
			out = result.ErrValue(e.recovered("invoke_method", r))
		}
	}()

	args, err := ReadArgs(mem, argsPtr, argsLen)
	if err != nil {
		return e.rejectValue(err)
	}
	return result.ValueFrom(e.agent.InvokeMethod(ctx, registry.ID(id), handle.Handle(recv), args...))
}

func (e *entries) rejectID(err error) result.ID {
	e.logger.Debug("boundary rejected input", zap.Error(err))
	return result.ErrID(errors.CodeOf(err))
}

func (e *entries) rejectValue(err error) result.Value {
	e.logger.Debug("boundary rejected input", zap.Error(err))
	return result.ErrValue(errors.CodeOf(err))
}

func (e *entries) recovered(entry string, r any) errors.Code {
	err := errors.TargetFaulted(entry, fmt.Errorf("panic: %v", r))
	e.logger.Warn("entry point panicked",
		zap.String("entry", entry),
		zap.Any("panic", r))
	return err.Code()
}
