package invoke

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/value"
)

// Targets resolves identifiers minted by a registry.
type Targets interface {
	Static(id registry.ID) (*catalog.Target, error)
	Method(id registry.ID) (*catalog.Target, error)
}

// StageFunc observes stage transitions of every call.
type StageFunc func(id registry.ID, target *catalog.Target, stage Stage)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for stage tracing.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStageFunc installs a stage observer.
func WithStageFunc(fn StageFunc) Option {
	return func(d *Dispatcher) {
		d.onStage = fn
	}
}

// Dispatcher performs calls: decode arguments, invoke the target, encode the result.
// Every failure is returned as an *errors.Error; target panics are recovered.
type Dispatcher struct {
	targets Targets
	logger  *zap.Logger
	onStage StageFunc
}

// New creates a dispatcher over targets.
func New(targets Targets, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		targets: targets,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// InvokeStatic calls the static target registered under id.
func (d *Dispatcher) InvokeStatic(ctx context.Context, id registry.ID, table handle.Lookup, args []value.Value) (value.Value, error) {
	t, err := d.targets.Static(id)
	if err != nil {
		return d.reject(id, err)
	}
	c := d.newCall(id, t)
	return c.run(ctx, t.Func(), table, args)
}

// InvokeMethod calls the instance target registered under id on the object
// stored at handle recv.
func (d *Dispatcher) InvokeMethod(ctx context.Context, id registry.ID, recv handle.Handle, table handle.Lookup, args []value.Value) (value.Value, error) {
	t, err := d.targets.Method(id)
	if err != nil {
		return d.reject(id, err)
	}
	c := d.newCall(id, t)

	var obj any
	ok := false
	if table != nil {
		obj, ok = table.Get(recv)
	}
	if !ok {
		return c.fail(errors.UnresolvedHandle([]string{"receiver"}, uint64(recv)))
	}
	fn, err := t.Bind(obj)
	if err != nil {
		return c.fail(err)
	}
	return c.run(ctx, fn, table, args)
}

func (d *Dispatcher) reject(id registry.ID, err error) (value.Value, error) {
	d.logger.Debug("invoke rejected",
		zap.Int64("id", int64(id)),
		zap.Error(err))
	return value.Value{}, err
}

func (d *Dispatcher) newCall(id registry.ID, t *catalog.Target) *call {
	return &call{d: d, id: id, target: t, stage: StageIdle}
}

type call struct {
	d      *Dispatcher
	target *catalog.Target
	id     registry.ID
	stage  Stage
}

func (c *call) advance(s Stage) {
	c.stage = s
	if c.d.onStage != nil {
		c.d.onStage(c.id, c.target, s)
	}
}

func (c *call) fail(err error) (value.Value, error) {
	from := c.stage
	c.advance(StageFailed)
	c.d.logger.Debug("invoke failed",
		zap.Int64("id", int64(c.id)),
		zap.String("target", c.target.FullName()),
		zap.Stringer("stage", from),
		zap.Error(err))
	return value.Value{}, err
}

func (c *call) run(ctx context.Context, fn reflect.Value, table handle.Lookup, args []value.Value) (value.Value, error) {
	in, err := c.decode(ctx, table, args)
	if err != nil {
		return c.fail(err)
	}
	c.advance(StageArgumentsDecoded)

	out, err := c.invoke(fn, in)
	if err != nil {
		return c.fail(err)
	}
	c.advance(StageInvoked)

	res, err := c.encode(out)
	if err != nil {
		return c.fail(err)
	}
	c.advance(StageResultEncoded)

	c.d.logger.Debug("invoke",
		zap.Int64("id", int64(c.id)),
		zap.String("target", c.target.FullName()),
		zap.Stringer("result", res))
	c.advance(StageReturned)
	return res, nil
}

func (c *call) decode(ctx context.Context, table handle.Lookup, args []value.Value) ([]reflect.Value, error) {
	if err := c.target.CheckArity(len(args)); err != nil {
		return nil, err
	}

	in := make([]reflect.Value, 0, len(args)+1)
	if c.target.WantsContext() {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, arg := range args {
		p, _ := c.target.Param(i)
		rv, err := value.Decode(arg, p.Type, table)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("arg[%d]", i))
		}
		in = append(in, rv)
	}
	return in, nil
}

func (c *call) invoke(fn reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.TargetFaulted(c.target.FullName(), fmt.Errorf("panic: %v", r))
		}
	}()

	out = fn.Call(in)
	if c.target.ReturnsError() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, errors.TargetFaulted(c.target.FullName(), last.Interface().(error))
		}
	}
	return out, nil
}

func (c *call) encode(out []reflect.Value) (value.Value, error) {
	if len(out) == 0 {
		return value.None(), nil
	}
	v, err := value.Encode(out[0])
	if err != nil {
		return value.Value{}, withPath(err, "result")
	}
	return v, nil
}

func withPath(err error, segment string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithPath(segment)
	}
	return err
}
