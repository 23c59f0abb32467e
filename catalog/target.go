package catalog

import (
	"context"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/value"
)

// Kind distinguishes static members from instance methods.
type Kind uint8

const (
	KindStatic Kind = iota
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Visibility of a member. Resolution considers both.
type Visibility uint8

const (
	Public Visibility = iota
	NonPublic
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "non-public"
}

// Param describes one boundary parameter.
type Param struct {
	Type reflect.Type
	Kind value.Kind
}

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Target is a resolvable callable: a static member or an instance method.
// Targets are immutable once built.
type Target struct {
	fn           reflect.Value
	recv         reflect.Type
	result       reflect.Type
	owner        string
	module       string
	name         string
	params       []Param
	kind         Kind
	visibility   Visibility
	variadic     bool
	wantsContext bool
	returnsError bool
}

// NewStatic builds a static target from a Go function.
func NewStatic(owner, name string, fn any) (*Target, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
			Path(owner, name).
			GoType(fmt.Sprintf("%T", fn)).
			Detail("static member must be a non-nil func").
			Build()
	}

	t := &Target{
		fn:         rv,
		owner:      owner,
		name:       name,
		kind:       KindStatic,
		visibility: visibilityOf(name),
	}
	if err := t.analyze(rv.Type(), 0); err != nil {
		return nil, err
	}
	return t, nil
}

// NewMethod builds an instance target for the method name of recvType.
// recvType may be a concrete type, a pointer type or an interface.
func NewMethod(owner string, recvType reflect.Type, name string) (*Target, error) {
	if recvType == nil {
		return nil, errors.New(errors.PhaseCatalog, errors.KindInvalidInput).
			Path(owner, name).
			Detail("receiver type is nil").
			Build()
	}
	m, ok := recvType.MethodByName(name)
	if !ok {
		return nil, errors.New(errors.PhaseCatalog, errors.KindTargetNotFound).
			Path(owner, name).
			GoType(recvType.String()).
			Detail("type has no exported method %q", name).
			Build()
	}

	t := &Target{
		recv:       recvType,
		owner:      owner,
		name:       name,
		kind:       KindMethod,
		visibility: visibilityOf(name),
	}
	skip := 1
	if recvType.Kind() == reflect.Interface {
		skip = 0
	}
	if err := t.analyze(m.Type, skip); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Target) analyze(ft reflect.Type, skip int) error {
	in := ft.NumIn()
	i := skip
	if i < in && ft.In(i) == contextType {
		t.wantsContext = true
		i++
	}
	for ; i < in; i++ {
		pt := ft.In(i)
		if ft.IsVariadic() && i == in-1 {
			t.variadic = true
			pt = pt.Elem()
		}
		t.params = append(t.params, Param{Type: pt, Kind: value.SlotKind(pt)})
	}

	switch ft.NumOut() {
	case 0:
	case 1:
		if out := ft.Out(0); out == errorType {
			t.returnsError = true
		} else {
			t.result = out
		}
	case 2:
		if ft.Out(1) != errorType {
			return errors.New(errors.PhaseCatalog, errors.KindUnsupportedReturn).
				Path(t.owner, t.name).
				GoType(ft.String()).
				Detail("second result must be error").
				Build()
		}
		t.result = ft.Out(0)
		t.returnsError = true
	default:
		return errors.New(errors.PhaseCatalog, errors.KindUnsupportedReturn).
			Path(t.owner, t.name).
			GoType(ft.String()).
			Detail("at most one value result plus error is supported").
			Build()
	}
	return nil
}

func visibilityOf(name string) Visibility {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return Public
	}
	return NonPublic
}

// Owner returns the declaring type name.
func (t *Target) Owner() string { return t.owner }

// Module returns the module of the declaring type, if any.
func (t *Target) Module() string { return t.module }

// Name returns the member name.
func (t *Target) Name() string { return t.name }

// FullName returns "Owner.Name".
func (t *Target) FullName() string { return t.owner + "." + t.name }

func (t *Target) Kind() Kind             { return t.kind }
func (t *Target) Visibility() Visibility { return t.visibility }
func (t *Target) Variadic() bool         { return t.variadic }
func (t *Target) WantsContext() bool     { return t.wantsContext }
func (t *Target) ReturnsError() bool     { return t.returnsError }

// Receiver returns the receiver type of an instance target, nil for statics.
func (t *Target) Receiver() reflect.Type { return t.recv }

// Result returns the value result type, nil when the target returns nothing.
func (t *Target) Result() reflect.Type { return t.result }

// Arity returns the number of boundary parameters. For variadic targets the
// last parameter is the element of the variadic tail.
func (t *Target) Arity() int { return len(t.params) }

// Params returns a copy of the boundary parameters.
func (t *Target) Params() []Param {
	return append([]Param(nil), t.params...)
}

// Param returns the slot for argument i, extending the variadic tail.
func (t *Target) Param(i int) (Param, bool) {
	if i < len(t.params) {
		return t.params[i], true
	}
	if t.variadic && len(t.params) > 0 {
		return t.params[len(t.params)-1], true
	}
	return Param{}, false
}

// CheckArity reports an arity_mismatch error when n arguments cannot be passed.
func (t *Target) CheckArity(n int) error {
	if t.variadic {
		if n < len(t.params)-1 {
			return errors.ArityMismatch(len(t.params)-1, n, true)
		}
		return nil
	}
	if n != len(t.params) {
		return errors.ArityMismatch(len(t.params), n, false)
	}
	return nil
}

// Func returns the function of a static target.
func (t *Target) Func() reflect.Value { return t.fn }

// Bind returns the method of obj named by t, ready to be called.
// A pointer is dereferenced when only its element satisfies the receiver type.
func (t *Target) Bind(obj any) (reflect.Value, error) {
	if t.kind != KindMethod {
		return t.fn, nil
	}
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		err := errors.TypeMismatch(errors.PhaseInvoke, []string{"receiver"}, t.recv.String(), "")
		err.Detail = "receiver is nil"
		return reflect.Value{}, err
	}
	if !rv.Type().AssignableTo(t.recv) {
		if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(t.recv) {
			rv = rv.Elem()
		} else {
			err := errors.TypeMismatch(errors.PhaseInvoke, []string{"receiver"}, t.recv.String(), value.KindReference.String())
			err.Detail = fmt.Sprintf("receiver holds %s", rv.Type())
			return reflect.Value{}, err
		}
	}
	m := rv.MethodByName(t.name)
	if !m.IsValid() {
		return reflect.Value{}, errors.NotFound("method", t.FullName())
	}
	return m, nil
}

func (t *Target) String() string {
	return fmt.Sprintf("%s %s", t.kind, t.FullName())
}
