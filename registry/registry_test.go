package registry

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/errors"
)

type counter struct{ n int32 }

func (c *counter) Add(d int32) int32 {
	c.n += d
	return c.n
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	if err := cat.Type("demo.Math").
		Static("Add", func(a, b int32) int32 { return a + b }).
		Build(); err != nil {
		t.Fatal(err)
	}
	if err := cat.Type("demo.Counter").
		Instance(reflect.TypeFor[*counter]()).
		Build(); err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestSpace_Unique_Concurrent(t *testing.T) {
	const n = 10000
	space := NewSpace[int](nil)

	ids := make([]ID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = space.Register(i)
		}(i)
	}
	wg.Wait()

	seen := make(map[ID]int, n)
	for i, id := range ids {
		if j, dup := seen[id]; dup {
			t.Fatalf("identifier %d handed to both %d and %d", id, j, i)
		}
		seen[id] = i
		got, ok := space.Lookup(id)
		if !ok || got != i {
			t.Fatalf("Lookup(%d) = %d, %v; want %d", id, got, ok, i)
		}
	}
	if space.Len() != n {
		t.Fatalf("Len() = %d, want %d", space.Len(), n)
	}
}

func TestSpace_RedrawsOnCollision(t *testing.T) {
	draws := []int64{7, 7, 7, 9}
	var calls int
	space := NewSpace[string](func() int64 {
		v := draws[calls]
		calls++
		return v
	})

	first := space.Register("a")
	second := space.Register("b")
	if first != 7 || second != 9 {
		t.Fatalf("ids = %d, %d; want 7, 9", first, second)
	}
	if calls != 4 {
		t.Fatalf("draw called %d times, want 4", calls)
	}
	if v, _ := space.Lookup(7); v != "a" {
		t.Fatal("collision overwrote an existing entry")
	}
}

func TestSpace_ExtremeIDs(t *testing.T) {
	draws := []int64{math.MinInt64, math.MaxInt64, 0, -1}
	var i int
	space := NewSpace[int](func() int64 {
		v := draws[i]
		i++
		return v
	})
	for j, want := range draws {
		if id := space.Register(j); int64(id) != want {
			t.Fatalf("Register = %d, want %d", id, want)
		}
	}
	for j, id := range draws {
		if v, ok := space.Lookup(ID(id)); !ok || v != j {
			t.Fatalf("Lookup(%d) = %d, %v", id, v, ok)
		}
	}
}

func TestSpace_Each(t *testing.T) {
	space := NewSpace[int](nil)
	for i := 0; i < 5; i++ {
		space.Register(i)
	}
	sum := 0
	space.Each(func(_ ID, v int) bool {
		sum += v
		return true
	})
	if sum != 10 {
		t.Fatalf("sum = %d", sum)
	}
	visited := 0
	space.Each(func(ID, int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("early stop visited %d", visited)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := New(newCatalog(t))

	id, err := reg.ResolveStatic("demo.Math", "Add")
	if err != nil {
		t.Fatal(err)
	}
	target, err := reg.Static(id)
	if err != nil || target.FullName() != "demo.Math.Add" {
		t.Fatalf("Static(%d) = %v, %v", id, target, err)
	}

	again, _ := reg.ResolveStatic("demo.Math", "Add")
	if again == id {
		t.Fatal("each resolve should mint a fresh identifier")
	}
	if reg.Statics().Len() != 2 {
		t.Fatalf("static space len = %d", reg.Statics().Len())
	}

	mid, err := reg.ResolveMethod("demo.Counter", "Add")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Method(mid); err != nil {
		t.Fatal(err)
	}
}

func TestRegistry_ResolveErrors(t *testing.T) {
	reg := New(newCatalog(t))

	tests := []struct {
		name    string
		resolve func() (ID, error)
		kind    errors.Kind
	}{
		{"empty type", func() (ID, error) { return reg.ResolveStatic("", "Add") }, errors.KindInvalidInput},
		{"empty member", func() (ID, error) { return reg.ResolveStatic("demo.Math", "") }, errors.KindInvalidInput},
		{"unknown type", func() (ID, error) { return reg.ResolveStatic("demo.Nope", "Add") }, errors.KindTargetNotFound},
		{"unknown member", func() (ID, error) { return reg.ResolveStatic("demo.Math", "Mul") }, errors.KindTargetNotFound},
		{"unknown method", func() (ID, error) { return reg.ResolveMethod("demo.Counter", "Sub") }, errors.KindTargetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.resolve()
			if errors.KindOf(err) != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
		})
	}
	if reg.Statics().Len() != 0 || reg.Methods().Len() != 0 {
		t.Fatal("failed resolves must not register anything")
	}
}

func TestRegistry_SpacesAreIndependent(t *testing.T) {
	reg := New(newCatalog(t), WithDraw(func() int64 { return 42 }))

	sid, err := reg.ResolveStatic("demo.Math", "Add")
	if err != nil {
		t.Fatal(err)
	}
	mid, err := reg.ResolveMethod("demo.Counter", "Add")
	if err != nil {
		t.Fatal(err)
	}
	if sid != mid {
		t.Fatalf("both spaces should accept id 42, got %d and %d", sid, mid)
	}

	st, _ := reg.Static(sid)
	mt, _ := reg.Method(mid)
	if st.Kind() != catalog.KindStatic || mt.Kind() != catalog.KindMethod {
		t.Fatal("spaces returned the wrong targets")
	}

	if _, err := reg.Static(7); errors.KindOf(err) != errors.KindTargetNotFound {
		t.Fatalf("expected target_not_found, got %v", err)
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := New(catalog.New())
	target, err := catalog.NewStatic("adhoc", "Neg", func(x int64) int64 { return -x })
	if err != nil {
		t.Fatal(err)
	}
	id := reg.Register(target)
	got, err := reg.Static(id)
	if err != nil || got != target {
		t.Fatalf("Static(%d) = %v, %v", id, got, err)
	}
}
