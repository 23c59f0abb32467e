package builtin

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/value"
)

func newAgent(t *testing.T) (*bridge.Agent, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cat, err := New(&out)
	if err != nil {
		t.Fatal(err)
	}
	agent := bridge.New(cat, bridge.DefaultOptions())
	if err := Seed(agent.Handles()); err != nil {
		t.Fatal(err)
	}
	return agent, &out
}

func TestByteFunction(t *testing.T) {
	agent, out := newAgent(t)

	id, err := agent.ResolveStatic("crosslang.MethodInvocationAgent, crosslang", "ByteFunction")
	if err != nil {
		t.Fatal(err)
	}
	got, err := agent.InvokeStatic(context.Background(), id, value.Ref(GreetingHandle))
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Byte(5) {
		t.Fatalf("got %v", got)
	}
	if out.String() != "printing something\n" {
		t.Fatalf("printed %q", out.String())
	}
}

func TestAddTest(t *testing.T) {
	agent, _ := newAgent(t)

	id, err := agent.ResolveStatic("crosslang.Tests.AddTest, crosslang", "Add")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ a, b, want int32 }{
		{3, 2, 5},
		{360, 17, 377},
	}
	for _, tt := range tests {
		got, err := agent.InvokeStatic(context.Background(), id, value.Int(tt.a), value.Int(tt.b))
		if err != nil {
			t.Fatal(err)
		}
		if got != value.Int(tt.want) {
			t.Fatalf("Add(%d, %d) = %v, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSampleMembers(t *testing.T) {
	agent, _ := newAgent(t)
	_ = agent.Handles().Insert(30, "héllo")

	tests := []struct {
		typeName string
		member   string
		args     []value.Value
		want     value.Value
		kind     errors.Kind
	}{
		{typeName: "crosslang.Math", member: "Add", args: []value.Value{value.Long(1 << 40), value.Long(1)}, want: value.Long(1<<40 + 1)},
		{typeName: "crosslang.Math", member: "Sum", want: value.Int(0)},
		{typeName: "crosslang.Math", member: "Sum", args: []value.Value{value.Int(4), value.Int(5)}, want: value.Int(9)},
		{typeName: "crosslang.Math", member: "Scale", args: []value.Value{value.Double(2), value.Float(1.5)}, want: value.Double(3)},
		{typeName: "crosslang.Math", member: "IsEven", args: []value.Value{value.Int(4)}, want: value.Bool(true)},
		{typeName: "crosslang.Math", member: "Negate", args: []value.Value{value.Byte(1)}, want: value.Byte(0xFF)},
		{typeName: "crosslang.Math", member: "clamp", args: []value.Value{value.Short(900), value.Short(0), value.Short(100)}, want: value.Short(100)},
		{typeName: "crosslang.Text", member: "Length", args: []value.Value{value.Ref(30)}, want: value.Int(5)},
		{typeName: "crosslang.Text", member: "CharAt", args: []value.Value{value.Ref(30), value.Int(1)}, want: value.Character('é')},
		{typeName: "crosslang.Text", member: "CharAt", args: []value.Value{value.Ref(30), value.Int(9)}, kind: errors.KindTargetFaulted},
		{typeName: "crosslang.Text", member: "Upper", args: []value.Value{value.Ref(30)}, kind: errors.KindNotImplemented},
		{typeName: "crosslang.Faults", member: "Divide", args: []value.Value{value.Int(9), value.Int(0)}, kind: errors.KindTargetFaulted},
		{typeName: "crosslang.Faults", member: "Panic", kind: errors.KindTargetFaulted},
		{typeName: "crosslang.Faults", member: "Count", kind: errors.KindUnsupportedReturn},
		{typeName: "crosslang.Counter", member: "New", kind: errors.KindNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.typeName+"."+tt.member, func(t *testing.T) {
			id, err := agent.ResolveStatic(tt.typeName, tt.member)
			if err != nil {
				t.Fatal(err)
			}
			got, err := agent.InvokeStatic(context.Background(), id, tt.args...)
			if tt.kind != "" {
				if errors.KindOf(err) != tt.kind {
					t.Fatalf("expected %s, got %v", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDivideCause(t *testing.T) {
	agent, _ := newAgent(t)
	id, _ := agent.ResolveStatic("crosslang.Faults", "Divide")
	_, err := agent.InvokeStatic(context.Background(), id, value.Int(1), value.Int(0))
	if !stderrors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero in chain, got %v", err)
	}
}

func TestCounterMethods(t *testing.T) {
	agent, _ := newAgent(t)

	add, err := agent.ResolveMethod("crosslang.Counter", "Add")
	if err != nil {
		t.Fatal(err)
	}
	get, _ := agent.ResolveMethod("crosslang.Counter", "Value")
	reset, _ := agent.ResolveMethod("crosslang.Counter", "Reset")
	clone, _ := agent.ResolveMethod("crosslang.Counter", "Clone")

	for i := 0; i < 3; i++ {
		if _, err := agent.InvokeMethod(context.Background(), add, CounterHandle, value.Long(2)); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := agent.InvokeMethod(context.Background(), get, CounterHandle)
	if got != value.Long(6) {
		t.Fatalf("Value() = %v", got)
	}
	if got, err := agent.InvokeMethod(context.Background(), reset, CounterHandle); err != nil || !got.IsNone() {
		t.Fatalf("Reset() = %v, %v", got, err)
	}
	if _, err := agent.InvokeMethod(context.Background(), clone, CounterHandle); errors.KindOf(err) != errors.KindNotImplemented {
		t.Fatalf("Clone: %v", err)
	}
	if _, err := agent.InvokeMethod(context.Background(), get, GreetingHandle); errors.KindOf(err) != errors.KindTypeMismatch {
		t.Fatalf("wrong receiver: %v", err)
	}
}
