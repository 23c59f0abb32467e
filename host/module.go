package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/callbridge"
	"github.com/wippyai/callbridge/boundary"
	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/result"
)

// ModuleName is the import module guests use.
const ModuleName = "callbridge"

// Return codes of every host function. The envelope itself carries the outcome
// of the call; these only report whether it could be stored.
const (
	StatusWritten   uint32 = 0
	StatusBadReturn uint32 = 1
)

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// FuncDef describes one exported host function.
type FuncDef struct {
	Name    string
	Handler api.GoModuleFunc
	Params  []api.ValueType
	Results []api.ValueType
}

// Module exposes an agent's entry table to WebAssembly guests.
type Module struct {
	entries *boundary.EntryTable
	logger  *zap.Logger
}

// New creates a host module for agent.
func New(agent *bridge.Agent) *Module {
	return &Module{
		entries: boundary.NewEntryTable(agent),
		logger:  agent.Logger(),
	}
}

// Funcs returns the host functions in export order.
func (m *Module) Funcs() []FuncDef {
	return []FuncDef{
		{
			Name:    "resolve_static",
			Handler: m.resolveStatic,
			Params:  []api.ValueType{i32, i32, i32, i32, i32},
			Results: []api.ValueType{i32},
		},
		{
			Name:    "resolve_method",
			Handler: m.resolveMethod,
			Params:  []api.ValueType{i32, i32, i32, i32, i32},
			Results: []api.ValueType{i32},
		},
		{
			Name:    "invoke_static",
			Handler: m.invokeStatic,
			Params:  []api.ValueType{i64, i32, i32, i32},
			Results: []api.ValueType{i32},
		},
		{
			Name:    "invoke_method",
			Handler: m.invokeMethod,
			Params:  []api.ValueType{i64, i64, i32, i32, i32},
			Results: []api.ValueType{i32},
		},
	}
}

// Instantiate registers the host module in rt under ModuleName.
func (m *Module) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(ModuleName)
	for _, f := range m.Funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.Handler, f.Params, f.Results).
			Export(f.Name)
	}
	return builder.Instantiate(ctx)
}

func (m *Module) resolveStatic(ctx context.Context, caller api.Module, stack []uint64) {
	m.resolve(caller, stack, m.entries.ResolveStatic)
}

func (m *Module) resolveMethod(ctx context.Context, caller api.Module, stack []uint64) {
	m.resolve(caller, stack, m.entries.ResolveMethod)
}

func (m *Module) resolve(caller api.Module, stack []uint64, fn boundary.ResolveFunc) {
	mem := WrapMemory(caller.Memory())
	r := fn(mem,
		api.DecodeU32(stack[0]), api.DecodeU32(stack[1]),
		api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	stack[0] = api.EncodeU32(m.status(boundary.WriteID(mem, api.DecodeU32(stack[4]), r)))
}

func (m *Module) invokeStatic(ctx context.Context, caller api.Module, stack []uint64) {
	mem := WrapMemory(caller.Memory())
	r := m.entries.InvokeStatic(ctx, mem,
		int64(stack[0]),
		api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	m.storeValue(mem, api.DecodeU32(stack[3]), r, stack)
}

func (m *Module) invokeMethod(ctx context.Context, caller api.Module, stack []uint64) {
	mem := WrapMemory(caller.Memory())
	r := m.entries.InvokeMethod(ctx, mem,
		int64(stack[0]), stack[1],
		api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	m.storeValue(mem, api.DecodeU32(stack[4]), r, stack)
}

func (m *Module) storeValue(mem callbridge.Memory, ret uint32, r result.Value, stack []uint64) {
	stack[0] = api.EncodeU32(m.status(boundary.WriteValue(mem, ret, r)))
}

func (m *Module) status(err error) uint32 {
	if err != nil {
		m.logger.Debug("envelope not stored", zap.Error(err))
		return StatusBadReturn
	}
	return StatusWritten
}
