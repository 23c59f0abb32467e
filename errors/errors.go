package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCatalog  Phase = "catalog"  // type and member declaration
	PhaseResolve  Phase = "resolve"  // name lookup
	PhaseDecode   Phase = "decode"   // tagged value to Go
	PhaseInvoke   Phase = "invoke"   // target call
	PhaseEncode   Phase = "encode"   // Go to tagged value
	PhaseHandle   Phase = "handle"   // handle table operations
	PhaseBoundary Phase = "boundary" // untrusted caller input
	PhaseLoad     Phase = "load"     // manifest loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindTargetNotFound    Kind = "target_not_found"
	KindNotImplemented    Kind = "not_implemented"
	KindUnsupportedReturn Kind = "unsupported_return_type"
	KindUnresolvedHandle  Kind = "unresolved_handle"
	KindArityMismatch     Kind = "arity_mismatch"
	KindTypeMismatch      Kind = "type_mismatch"
	KindTargetFaulted     Kind = "target_faulted"
)

// Code is the boundary representation of a Kind.
// Values are stable; 0 through 3 keep the order of the first wire revision.
type Code int32

const (
	CodeInvalidInput Code = iota
	CodeTargetNotFound
	CodeNotImplemented
	CodeUnsupportedReturn
	CodeUnresolvedHandle
	CodeArityMismatch
	CodeTypeMismatch
	CodeTargetFaulted
)

var kindCodes = map[Kind]Code{
	KindInvalidInput:      CodeInvalidInput,
	KindTargetNotFound:    CodeTargetNotFound,
	KindNotImplemented:    CodeNotImplemented,
	KindUnsupportedReturn: CodeUnsupportedReturn,
	KindUnresolvedHandle:  CodeUnresolvedHandle,
	KindArityMismatch:     CodeArityMismatch,
	KindTypeMismatch:      CodeTypeMismatch,
	KindTargetFaulted:     CodeTargetFaulted,
}

var codeKinds = map[Code]Kind{
	CodeInvalidInput:      KindInvalidInput,
	CodeTargetNotFound:    KindTargetNotFound,
	CodeNotImplemented:    KindNotImplemented,
	CodeUnsupportedReturn: KindUnsupportedReturn,
	CodeUnresolvedHandle:  KindUnresolvedHandle,
	CodeArityMismatch:     KindArityMismatch,
	CodeTypeMismatch:      KindTypeMismatch,
	CodeTargetFaulted:     KindTargetFaulted,
}

// Code returns the boundary code for k. Unknown kinds map to CodeTargetFaulted.
func (k Kind) Code() Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return CodeTargetFaulted
}

// Kind returns the kind for c and whether c is a known code.
func (c Code) Kind() (Kind, bool) {
	k, ok := codeKinds[c]
	return k, ok
}

func (c Code) String() string {
	if k, ok := codeKinds[c]; ok {
		return string(k)
	}
	return fmt.Sprintf("code(%d)", int32(c))
}

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Tag    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Tag != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Tag != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", tag ")
			b.WriteString(e.Tag)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("tag ")
			b.WriteString(e.Tag)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Tag != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kinds must match; the phase only has to match when target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Code returns the boundary code of the error kind.
func (e *Error) Code() Code {
	return e.Kind.Code()
}

// WithPath returns a copy of e with path segments prepended.
func (e *Error) WithPath(path ...string) *Error {
	c := *e
	c.Path = append(append([]string(nil), path...), e.Path...)
	return &c
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf maps any error to a boundary code.
// Errors outside this package are failures of the target itself.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return CodeTargetFaulted
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Tag sets the tagged value kind name
func (b *Builder) Tag(t string) *Builder {
	b.err.Tag = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a target-not-found error
func NotFound(what, name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindTargetNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// UnresolvedHandle creates an error for a handle absent from the handle table
func UnresolvedHandle(path []string, handle uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnresolvedHandle,
		Path:   path,
		Detail: fmt.Sprintf("handle %d not in table", handle),
		Value:  handle,
	}
}

// ArityMismatch creates an argument count error
func ArityMismatch(want, got int, variadic bool) *Error {
	detail := fmt.Sprintf("expected %d arguments, got %d", want, got)
	if variadic {
		detail = fmt.Sprintf("expected at least %d arguments, got %d", want, got)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindArityMismatch,
		Detail: detail,
		Value:  got,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, tag string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Tag:    tag,
	}
}

// NotImplemented creates an error for object-typed results
func NotImplemented(goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindNotImplemented,
		GoType: goType,
		Detail: "object-typed results are not supported",
	}
}

// UnsupportedReturn creates an error for results outside the tagged kind set
func UnsupportedReturn(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedReturn,
		GoType: goType,
		Detail: "result type has no tagged kind",
	}
}

// TargetFaulted creates an error for a failure raised by the invoked target
func TargetFaulted(target string, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindTargetFaulted,
		Detail: fmt.Sprintf("target %s failed", target),
		Cause:  cause,
	}
}

// OutOfBounds creates an error for caller memory access outside its bounds
func OutOfBounds(path []string, offset, length uint32) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: fmt.Sprintf("range [%d, +%d) out of bounds", offset, length),
		Value:  offset,
	}
}

// Load creates a manifest loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
