package catalog

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/wippyai/callbridge/errors"
)

type typeEntry struct {
	statics map[string]*Target
	methods map[string]*Target
	name    string
	module  string
}

// Catalog is the static manifest of resolvable types and their members.
// It is safe for concurrent use.
type Catalog struct {
	types map[string]*typeEntry
	mu    sync.RWMutex
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{types: make(map[string]*typeEntry)}
}

// Type starts the declaration of a type. Nothing is visible until Build succeeds.
func (c *Catalog) Type(name string) *TypeBuilder {
	return &TypeBuilder{catalog: c, name: name}
}

// TypeBuilder collects the members of one type.
type TypeBuilder struct {
	catalog *Catalog
	err     error
	name    string
	module  string
	statics []*Target
	methods []*Target
}

// Module sets the module the type belongs to.
func (b *TypeBuilder) Module(module string) *TypeBuilder {
	b.module = module
	return b
}

// Static adds a static member backed by fn.
func (b *TypeBuilder) Static(name string, fn any) *TypeBuilder {
	if b.err != nil {
		return b
	}
	t, err := NewStatic(b.name, name, fn)
	if err != nil {
		b.err = err
		return b
	}
	b.statics = append(b.statics, t)
	return b
}

// Method adds the instance method name of goType.
func (b *TypeBuilder) Method(goType reflect.Type, name string) *TypeBuilder {
	if b.err != nil {
		return b
	}
	t, err := NewMethod(b.name, goType, name)
	if err != nil {
		b.err = err
		return b
	}
	b.methods = append(b.methods, t)
	return b
}

// Instance adds every exported method of goType whose signature is supported.
// Methods with unsupported result shapes are skipped.
func (b *TypeBuilder) Instance(goType reflect.Type) *TypeBuilder {
	if b.err != nil {
		return b
	}
	if goType == nil {
		b.err = errors.InvalidInput(errors.PhaseCatalog, "instance type is nil")
		return b
	}
	for i := 0; i < goType.NumMethod(); i++ {
		m := goType.Method(i)
		if !m.IsExported() {
			continue
		}
		t, err := NewMethod(b.name, goType, m.Name)
		if err != nil {
			if errors.KindOf(err) == errors.KindUnsupportedReturn {
				continue
			}
			b.err = err
			return b
		}
		b.methods = append(b.methods, t)
	}
	return b
}

// Build validates the declaration and commits it atomically.
func (b *TypeBuilder) Build() error {
	if b.err != nil {
		return b.err
	}
	if strings.TrimSpace(b.name) == "" {
		return errors.InvalidInput(errors.PhaseCatalog, "type name is empty")
	}
	if strings.ContainsRune(b.name, ',') {
		return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
			Value(b.name).
			Detail("type name %q must not contain a module qualifier", b.name).
			Build()
	}

	entry := &typeEntry{
		name:    b.name,
		module:  b.module,
		statics: make(map[string]*Target, len(b.statics)),
		methods: make(map[string]*Target, len(b.methods)),
	}
	if err := addMembers(entry.statics, b.statics, b.module); err != nil {
		return err
	}
	if err := addMembers(entry.methods, b.methods, b.module); err != nil {
		return err
	}

	c := b.catalog
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.types[b.name]; exists {
		return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
			Value(b.name).
			Detail("type %q already declared", b.name).
			Build()
	}
	c.types[b.name] = entry
	return nil
}

func addMembers(dst map[string]*Target, targets []*Target, module string) error {
	for _, t := range targets {
		if t.name == "" {
			return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
				Path(t.owner).
				Detail("member name is empty").
				Build()
		}
		if _, dup := dst[t.name]; dup {
			return errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
				Path(t.owner, t.name).
				Detail("duplicate %s member %q", t.kind, t.name).
				Build()
		}
		t.module = module
		dst[t.name] = t
	}
	return nil
}

// LookupStatic finds a static member. typeName may carry a ", Module" qualifier.
func (c *Catalog) LookupStatic(typeName, member string) (*Target, error) {
	return c.lookup(typeName, member, KindStatic)
}

// LookupMethod finds an instance method. typeName may carry a ", Module" qualifier.
func (c *Catalog) LookupMethod(typeName, member string) (*Target, error) {
	return c.lookup(typeName, member, KindMethod)
}

func (c *Catalog) lookup(typeName, member string, kind Kind) (*Target, error) {
	if typeName == "" {
		return nil, errors.InvalidInput(errors.PhaseResolve, "type name is empty")
	}
	if member == "" {
		return nil, errors.InvalidInput(errors.PhaseResolve, "member name is empty")
	}

	name, module, qualified := SplitQualified(typeName)

	c.mu.RLock()
	entry, ok := c.types[name]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("type", typeName)
	}
	if qualified && module != entry.module {
		return nil, errors.New(errors.PhaseResolve, errors.KindTargetNotFound).
			Value(typeName).
			Detail("type %q is not declared in module %q", name, module).
			Build()
	}

	members := entry.statics
	if kind == KindMethod {
		members = entry.methods
	}
	t, ok := members[member]
	if !ok {
		return nil, errors.NotFound(kind.String(), name+"."+member)
	}
	return t, nil
}

// SplitQualified splits "Namespace.Type, Module" into its parts.
func SplitQualified(typeName string) (name, module string, qualified bool) {
	name, module, qualified = strings.Cut(typeName, ",")
	return strings.TrimSpace(name), strings.TrimSpace(module), qualified
}

// Types returns the declared type names in sorted order.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Members returns the targets of a type: statics first, then methods,
// each sorted by name.
func (c *Catalog) Members(typeName string) []*Target {
	c.mu.RLock()
	entry, ok := c.types[typeName]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return append(sortedTargets(entry.statics), sortedTargets(entry.methods)...)
}

// Each calls fn for every target in Types/Members order until fn returns false.
func (c *Catalog) Each(fn func(*Target) bool) {
	for _, name := range c.Types() {
		for _, t := range c.Members(name) {
			if !fn(t) {
				return
			}
		}
	}
}

// Len returns the number of declared types.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}

func sortedTargets(m map[string]*Target) []*Target {
	out := make([]*Target, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
