package bridge

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/value"
)

type box struct{ v int32 }

func (b *box) Get() int32 { return b.v }

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	if err := cat.Type("crosslang.MethodInvocationAgent").
		Module("crosslang").
		Static("ByteFunction", func(s string) uint8 { return 5 }).
		Build(); err != nil {
		t.Fatal(err)
	}
	if err := cat.Type("demo.Box").
		Instance(reflect.TypeFor[*box]()).
		Build(); err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestAgent_Scenario(t *testing.T) {
	agent := New(newCatalog(t), DefaultOptions())
	if err := agent.Handles().Insert(13, "printing something"); err != nil {
		t.Fatal(err)
	}

	id, err := agent.ResolveStatic("crosslang.MethodInvocationAgent, crosslang", "ByteFunction")
	if err != nil {
		t.Fatal(err)
	}
	got, err := agent.InvokeStatic(context.Background(), id, value.Ref(13))
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Byte(5) {
		t.Fatalf("got %v", got)
	}

	_, err = agent.InvokeStatic(context.Background(), id)
	if errors.KindOf(err) != errors.KindArityMismatch {
		t.Fatalf("expected arity_mismatch, got %v", err)
	}
}

func TestAgent_Method(t *testing.T) {
	agent := New(newCatalog(t), DefaultOptions())
	_ = agent.Handles().Insert(1, &box{v: 42})

	id, err := agent.ResolveMethod("demo.Box", "Get")
	if err != nil {
		t.Fatal(err)
	}
	got, err := agent.InvokeMethod(context.Background(), id, 1)
	if err != nil || got != value.Int(42) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAgent_ResolveNegatives(t *testing.T) {
	agent := New(newCatalog(t), DefaultOptions())

	if _, err := agent.ResolveStatic("", "ByteFunction"); errors.KindOf(err) != errors.KindInvalidInput {
		t.Fatalf("empty type: %v", err)
	}
	if _, err := agent.ResolveStatic("crosslang.Missing", "ByteFunction"); errors.KindOf(err) != errors.KindTargetNotFound {
		t.Fatalf("missing type: %v", err)
	}
	if _, err := agent.ResolveMethod("demo.Box", "Set"); errors.KindOf(err) != errors.KindTargetNotFound {
		t.Fatalf("missing method: %v", err)
	}
}

func TestAgent_Register(t *testing.T) {
	agent := New(nil, Options{Draw: func() int64 { return -9 }})

	target, err := catalog.NewStatic("adhoc", "Not", func(b bool) bool { return !b })
	if err != nil {
		t.Fatal(err)
	}
	id := agent.Register(target)
	if id != -9 {
		t.Fatalf("custom draw not used, id = %d", id)
	}
	got, err := agent.InvokeStatic(context.Background(), id, value.Bool(true))
	if err != nil || got != value.Bool(false) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestAgent_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	agent := New(newCatalog(t), Options{Logger: zap.New(core)})

	_ = agent.Handles().Insert(13, "x")
	id, _ := agent.ResolveStatic("crosslang.MethodInvocationAgent", "ByteFunction")
	_, _ = agent.InvokeStatic(context.Background(), id, value.Ref(13))

	for _, msg := range []string{"handle event", "resolved", "invoke"} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("no %q log entry", msg)
		}
	}
}

func TestLogger_Fallback(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() should never be nil")
	}

	core, logs := observer.New(zap.DebugLevel)
	custom := zap.New(core)
	SetLogger(custom)
	defer SetLogger(nil)

	if Logger() != custom {
		t.Fatal("SetLogger did not install the logger")
	}
	agent := New(newCatalog(t), Options{})
	if agent.Logger() != custom {
		t.Fatal("agent without Options.Logger should use the package logger")
	}
	if _, err := agent.ResolveStatic("crosslang.MethodInvocationAgent", "Missing"); err == nil {
		t.Fatal("expected resolve error")
	}
	if logs.FilterMessage("resolve failed").Len() != 1 {
		t.Error("resolve failure not logged through the package logger")
	}

	SetLogger(nil)
	if Logger() == nil || Logger() == custom {
		t.Fatal("SetLogger(nil) should restore the no-op logger")
	}
}
