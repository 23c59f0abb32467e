package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/invoke"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/value"
)

// Agent is one bridge instance. It exclusively owns its registry, handle table
// and dispatcher; callers only ever hold identifiers and handles.
type Agent struct {
	catalog    *catalog.Catalog
	registry   *registry.Registry
	handles    *handle.Table
	dispatcher *invoke.Dispatcher
	logger     *zap.Logger
}

// New creates an agent resolving names through cat.
func New(cat *catalog.Catalog, opts Options) *Agent {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	if cat == nil {
		cat = catalog.New()
	}

	var regOpts []registry.Option
	if opts.Draw != nil {
		regOpts = append(regOpts, registry.WithDraw(opts.Draw))
	}
	reg := registry.New(cat, regOpts...)

	a := &Agent{
		catalog:    cat,
		registry:   reg,
		handles:    handle.NewTable(),
		dispatcher: invoke.New(reg, invoke.WithLogger(log)),
		logger:     log,
	}
	a.handles.Subscribe(handle.ObserverFunc(func(e handle.Event) {
		log.Debug("handle event",
			zap.Uint64("handle", uint64(e.Handle)),
			zap.Stringer("event", e.Type))
	}))
	return a
}

// ResolveStatic resolves a static member to a fresh identifier.
func (a *Agent) ResolveStatic(typeName, member string) (registry.ID, error) {
	id, err := a.registry.ResolveStatic(typeName, member)
	a.logResolve("static", typeName, member, id, err)
	return id, err
}

// ResolveMethod resolves an instance method to a fresh identifier.
func (a *Agent) ResolveMethod(typeName, member string) (registry.ID, error) {
	id, err := a.registry.ResolveMethod(typeName, member)
	a.logResolve("method", typeName, member, id, err)
	return id, err
}

func (a *Agent) logResolve(kind, typeName, member string, id registry.ID, err error) {
	if err != nil {
		a.logger.Debug("resolve failed",
			zap.String("kind", kind),
			zap.String("type", typeName),
			zap.String("member", member),
			zap.Error(err))
		return
	}
	a.logger.Debug("resolved",
		zap.String("kind", kind),
		zap.String("type", typeName),
		zap.String("member", member),
		zap.Int64("id", int64(id)))
}

// Register mints an identifier for an already built target.
func (a *Agent) Register(t *catalog.Target) registry.ID {
	return a.registry.Register(t)
}

// InvokeStatic calls a static target, resolving references through the agent's
// handle table.
func (a *Agent) InvokeStatic(ctx context.Context, id registry.ID, args ...value.Value) (value.Value, error) {
	return a.dispatcher.InvokeStatic(ctx, id, a.handles, args)
}

// InvokeMethod calls an instance target on the object stored at recv.
func (a *Agent) InvokeMethod(ctx context.Context, id registry.ID, recv handle.Handle, args ...value.Value) (value.Value, error) {
	return a.dispatcher.InvokeMethod(ctx, id, recv, a.handles, args)
}

// Handles returns the handle table the embedding host populates.
func (a *Agent) Handles() *handle.Table { return a.handles }

// Catalog returns the catalog names are resolved against.
func (a *Agent) Catalog() *catalog.Catalog { return a.catalog }

// Registry returns the agent's registry.
func (a *Agent) Registry() *registry.Registry { return a.registry }

// Logger returns the agent's logger.
func (a *Agent) Logger() *zap.Logger { return a.logger }
