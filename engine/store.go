package engine

import (
	"sync"

	"github.com/avindel/handcast/core"
)

// Store keeps one component kind in sparse-set form: a dense entity slice
// for iteration, a parallel value slice, and an index map from entity to
// dense position. Removal swap-deletes, so iteration order is unspecified
type Store[T any] struct {
	mu       sync.RWMutex
	index    map[core.Entity]int
	entities []core.Entity
	values   []T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[core.Entity]int),
	}
}

// Set inserts or replaces the component for an entity
func (s *Store[T]) Set(e core.Entity, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[e]; ok {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// Remove swap-deletes the entity's slot. No-op when absent
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	moved := s.entities[last]
	s.entities[i] = moved
	s.values[i] = s.values[last]
	s.index[moved] = i

	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
}

// Entities returns a copy of the dense entity slice
// Safe to mutate the store while ranging over the copy
func (s *Store[T]) Entities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = make(map[core.Entity]int)
	s.entities = nil
	s.values = nil
}
