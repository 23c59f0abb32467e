// Package builtin declares the sample types shipped with the CLI and examples.
package builtin

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/value"
)

// Module is the module every sample type is declared in.
const Module = "crosslang"

// Handles used by Seed.
const (
	GreetingHandle handle.Handle = 13
	CounterHandle  handle.Handle = 20
)

// ErrDivideByZero is returned by crosslang.Faults.Divide.
var ErrDivideByZero = stderrors.New("division by zero")

// Counter is an instance type exercised through method identifiers.
type Counter struct {
	n  int64
	mu sync.Mutex
}

func (c *Counter) Add(d int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += d
	return c.n
}

func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}

// Clone returns a copy. Object results cannot cross the boundary, so calling
// it through the bridge fails with not_implemented.
func (c *Counter) Clone() *Counter {
	return &Counter{n: c.Value()}
}

// Register declares the sample types in cat. Printing targets write to out,
// or to stdout when out is nil.
func Register(cat *catalog.Catalog, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	decls := []*catalog.TypeBuilder{
		cat.Type("crosslang.MethodInvocationAgent").
			Module(Module).
			Static("ByteFunction", func(s string) uint8 {
				fmt.Fprintln(out, s)
				return 5
			}),
		cat.Type("crosslang.Tests.AddTest").
			Module(Module).
			Static("Add", func(a, b int32) int32 { return a + b }),
		cat.Type("crosslang.Math").
			Module(Module).
			Static("Add", func(a, b int64) int64 { return a + b }).
			Static("Sum", func(xs ...int32) int32 {
				var s int32
				for _, x := range xs {
					s += x
				}
				return s
			}).
			Static("Scale", func(v float64, f float32) float64 { return v * float64(f) }).
			Static("IsEven", func(v int32) bool { return v%2 == 0 }).
			Static("Negate", func(b int8) int8 { return -b }).
			Static("clamp", func(v, lo, hi int16) int16 { return max(lo, min(v, hi)) }),
		cat.Type("crosslang.Text").
			Module(Module).
			Static("Length", func(s string) int32 { return int32(len(utf16.Encode([]rune(s)))) }).
			Static("CharAt", func(s string, i int32) (value.Char, error) {
				units := utf16.Encode([]rune(s))
				if i < 0 || int(i) >= len(units) {
					return 0, fmt.Errorf("index %d out of range [0, %d)", i, len(units))
				}
				return value.Char(units[i]), nil
			}).
			Static("Upper", func(s string) string { return strings.ToUpper(s) }).
			Static("Print", func(ctx context.Context, s string) {
				fmt.Fprintln(out, s)
			}),
		cat.Type("crosslang.Faults").
			Module(Module).
			Static("Divide", func(a, b int32) (int32, error) {
				if b == 0 {
					return 0, ErrDivideByZero
				}
				return a / b, nil
			}).
			Static("Panic", func() int32 { panic("crosslang.Faults.Panic") }).
			Static("Count", func() int { return 1 }),
		cat.Type("crosslang.Counter").
			Module(Module).
			Static("New", func() *Counter { return &Counter{} }).
			Instance(reflect.TypeFor[*Counter]()),
	}

	for _, d := range decls {
		if err := d.Build(); err != nil {
			return err
		}
	}
	return nil
}

// New returns a catalog holding only the sample types.
func New(out io.Writer) (*catalog.Catalog, error) {
	cat := catalog.New()
	if err := Register(cat, out); err != nil {
		return nil, err
	}
	return cat, nil
}

// Seed inserts the sample objects: a greeting string at GreetingHandle and a
// Counter at CounterHandle.
func Seed(table *handle.Table) error {
	if err := table.Insert(GreetingHandle, "printing something"); err != nil {
		return err
	}
	return table.Insert(CounterHandle, &Counter{})
}
