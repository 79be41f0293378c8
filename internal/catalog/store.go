package catalog

import (
	"errors"
	"fmt"
	"sync"

	"campushub/internal/domain"
)

var (
	// ErrAlreadyInitialized is returned when a store is seeded twice
	ErrAlreadyInitialized = errors.New("store already initialized")
	// ErrDuplicateID is returned when a seed repeats an entity ID
	ErrDuplicateID = errors.New("duplicate entity id")
)

// Store holds the authoritative in-memory list for one page session.
// Entities are never modified in place; the reducer installs new snapshots
// through Replace.
type Store[T any] struct {
	mu          sync.RWMutex
	entities    []*domain.Entity[T]
	index       map[string]int
	initialized bool
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[string]int),
	}
}

// Initialize sets the store contents. It may only be called once.
func (s *Store[T]) Initialize(seed []domain.Entity[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return ErrAlreadyInitialized
	}

	entities := make([]*domain.Entity[T], 0, len(seed))
	index := make(map[string]int, len(seed))
	for i := range seed {
		e := seed[i]
		if _, exists := index[e.ID]; exists {
			return fmt.Errorf("seed entity %q: %w", e.ID, ErrDuplicateID)
		}
		index[e.ID] = len(entities)
		entities = append(entities, &e)
	}

	s.entities = entities
	s.index = index
	s.initialized = true
	return nil
}

// All returns the current snapshot in insertion order.
// The slice is a copy; the entities are shared and must not be modified.
func (s *Store[T]) All() []*domain.Entity[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Entity[T], len(s.entities))
	copy(result, s.entities)
	return result
}

// Get returns the entity with the given ID
func (s *Store[T]) Get(id string) (*domain.Entity[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.entities[i], true
}

// Len returns the number of entities
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Replace installs a new snapshot produced by Reduce
func (s *Store[T]) Replace(next []*domain.Entity[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(next))
	for i, e := range next {
		index[e.ID] = i
	}
	s.entities = next
	s.index = index
}
