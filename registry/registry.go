package registry

import (
	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/errors"
)

// Option configures a Registry.
type Option func(*config)

type config struct {
	draw DrawFunc
}

// WithDraw replaces the identifier source of both spaces.
func WithDraw(draw DrawFunc) Option {
	return func(c *config) {
		c.draw = draw
	}
}

// Registry holds the static and instance identifier spaces over one catalog.
// The two spaces are independent; an identifier only has meaning within the
// space that minted it.
type Registry struct {
	catalog *catalog.Catalog
	statics *Space[*catalog.Target]
	methods *Space[*catalog.Target]
}

// New creates a registry resolving names through cat.
func New(cat *catalog.Catalog, opts ...Option) *Registry {
	cfg := config{draw: RandomDraw}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		catalog: cat,
		statics: NewSpace[*catalog.Target](cfg.draw),
		methods: NewSpace[*catalog.Target](cfg.draw),
	}
}

// Catalog returns the catalog names are resolved against.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// Register mints an identifier for t in the space matching its kind.
func (r *Registry) Register(t *catalog.Target) ID {
	if t.Kind() == catalog.KindMethod {
		return r.methods.Register(t)
	}
	return r.statics.Register(t)
}

// ResolveStatic looks up a static member and registers it.
// Each call mints a new identifier, even for a member resolved before.
func (r *Registry) ResolveStatic(typeName, member string) (ID, error) {
	t, err := r.catalog.LookupStatic(typeName, member)
	if err != nil {
		return 0, err
	}
	return r.statics.Register(t), nil
}

// ResolveMethod looks up an instance method and registers it.
func (r *Registry) ResolveMethod(typeName, member string) (ID, error) {
	t, err := r.catalog.LookupMethod(typeName, member)
	if err != nil {
		return 0, err
	}
	return r.methods.Register(t), nil
}

// Static returns the static target registered under id.
func (r *Registry) Static(id ID) (*catalog.Target, error) {
	t, ok := r.statics.Lookup(id)
	if !ok {
		return nil, unknownID("static", id)
	}
	return t, nil
}

// Method returns the instance target registered under id.
func (r *Registry) Method(id ID) (*catalog.Target, error) {
	t, ok := r.methods.Lookup(id)
	if !ok {
		return nil, unknownID("method", id)
	}
	return t, nil
}

// Statics exposes the static space.
func (r *Registry) Statics() *Space[*catalog.Target] { return r.statics }

// Methods exposes the instance space.
func (r *Registry) Methods() *Space[*catalog.Target] { return r.methods }

func unknownID(space string, id ID) error {
	return errors.New(errors.PhaseInvoke, errors.KindTargetNotFound).
		Value(int64(id)).
		Detail("no %s target registered under id %d", space, int64(id)).
		Build()
}
