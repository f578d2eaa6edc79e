package memory

import (
	"slices"
	"sync"
)

type Record interface {
	GetID() string
}

// Persister receives the full table after every change. A non-nil error
// aborts the change.
type Persister[T Record] func(items []T) error

// Store is an ordered in-memory table guarded by a RWMutex.
type Store[T Record] struct {
	mu      sync.RWMutex
	items   []T
	persist Persister[T]
}

func NewStore[T Record](seed []T, persist Persister[T]) *Store[T] {
	return &Store[T]{
		items:   slices.Clone(seed),
		persist: persist,
	}
}

func (s *Store[T]) Insert(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(append(slices.Clone(s.items), item))
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.GetID() == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

func (s *Store[T]) Filter(match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0)

	for _, item := range s.items {
		if match == nil || match(item) {
			result = append(result, item)
		}
	}

	return result
}

func (s *Store[T]) Find(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if match(item) {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Mutate applies change to the record with the given id and returns the
// result. ok is false when no such record exists.
func (s *Store[T]) Mutate(id string, change func(*T)) (result T, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.items, func(item T) bool { return item.GetID() == id })

	if index < 0 {
		return result, false, nil
	}

	next := slices.Clone(s.items)
	change(&next[index])

	if err := s.commit(next); err != nil {
		return result, false, err
	}

	return next[index], true, nil
}

func (s *Store[T]) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.items, func(item T) bool { return item.GetID() == id })

	if index < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.items), index, index+1)

	if err := s.commit(next); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *Store[T]) commit(next []T) error {
	if s.persist != nil {
		if err := s.persist(next); err != nil {
			return err
		}
	}

	s.items = next

	return nil
}
