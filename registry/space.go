package registry

import (
	"math/rand/v2"
	"sync"
)

// ID is an opaque identifier handed to callers. Every 64-bit value is valid.
type ID int64

// DrawFunc returns a candidate identifier.
type DrawFunc func() int64

// RandomDraw draws uniformly over the full signed 64-bit range.
func RandomDraw() int64 {
	return int64(rand.Uint64())
}

// Space maps identifiers to entries. Identifiers are drawn at random and
// redrawn on collision while the write lock is held, so concurrent Register
// calls never share one.
type Space[T any] struct {
	entries map[ID]T
	draw    DrawFunc
	mu      sync.RWMutex
}

// NewSpace creates a space drawing identifiers from draw, or RandomDraw if nil.
func NewSpace[T any](draw DrawFunc) *Space[T] {
	if draw == nil {
		draw = RandomDraw
	}
	return &Space[T]{
		entries: make(map[ID]T),
		draw:    draw,
	}
}

// Register stores entry under a fresh identifier.
// The draw is repeated until it misses every live identifier; there is no retry bound.
func (s *Space[T]) Register(entry T) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ID(s.draw())
	for {
		if _, taken := s.entries[id]; !taken {
			break
		}
		id = ID(s.draw())
	}
	s.entries[id] = entry
	return id
}

// Lookup returns the entry for id.
func (s *Space[T]) Lookup(id ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of registered entries.
func (s *Space[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Each calls fn for a snapshot of the entries until fn returns false.
func (s *Space[T]) Each(fn func(ID, T) bool) {
	s.mu.RLock()
	snapshot := make(map[ID]T, len(s.entries))
	for id, e := range s.entries {
		snapshot[id] = e
	}
	s.mu.RUnlock()

	for id, e := range snapshot {
		if !fn(id, e) {
			return
		}
	}
}
