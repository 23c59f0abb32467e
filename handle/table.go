package handle

import (
	"reflect"
	"sync"

	"github.com/wippyai/callbridge/errors"
)

// Table maps handles to live Go values.
// Entries are added and removed by the host; the bridge only reads them.
// There is no eviction. Thread-safe.
type Table struct {
	entries   map[Handle]any
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[Handle]any, 64),
	}
}

// Insert stores value under h, replacing any previous value.
// A nil value cannot be referenced and is rejected.
func (t *Table) Insert(h Handle, value any) error {
	if value == nil {
		return errors.New(errors.PhaseHandle, errors.KindInvalidInput).
			Value(uint64(h)).
			Detail("cannot insert nil value under handle %d", h).
			Build()
	}

	t.mu.Lock()
	_, replaced := t.entries[h]
	t.entries[h] = value
	t.mu.Unlock()

	typ := EventInserted
	if replaced {
		typ = EventReplaced
	}
	t.notify(Event{Type: typ, Handle: h, Value: value})
	return nil
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[h]
	return v, ok
}

// Remove deletes h and returns its value. Values implementing Dropper are dropped.
func (t *Table) Remove(h Handle) (any, bool) {
	t.mu.Lock()
	v, ok := t.entries[h]
	if ok {
		delete(t.entries, h)
	}
	t.mu.Unlock()

	if !ok {
		return nil, false
	}
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventRemoved, Handle: h, Value: v})
	return v, true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Each iterates over a snapshot of the entries until fn returns false.
func (t *Table) Each(fn func(Handle, any) bool) {
	t.mu.RLock()
	snapshot := make(map[Handle]any, len(t.entries))
	for h, v := range t.entries {
		snapshot[h] = v
	}
	t.mu.RUnlock()

	for h, v := range snapshot {
		if !fn(h, v) {
			return
		}
	}
}

// Clear removes all entries.
func (t *Table) Clear() {
	// Collect handles first to avoid holding lock during Remove
	var handles []Handle
	t.Each(func(h Handle, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers of uncomparable types, such as
// an ObserverFunc, cannot be matched and are left subscribed.
func (t *Table) Unsubscribe(o Observer) {
	if !matchable(o) {
		return
	}
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if !matchable(obs) {
			continue
		}
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func matchable(o Observer) bool {
	return o != nil && reflect.TypeOf(o).Comparable()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
