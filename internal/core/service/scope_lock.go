package service

import (
	"slices"
	"sync"
)

// ScopeLocker hands out one mutex per scope key. Entries are dropped once no
// caller holds or waits on them.
type ScopeLocker struct {
	mu    sync.Mutex
	locks map[string]*scopeLock
}

type scopeLock struct {
	mu   sync.Mutex
	refs int
}

func NewScopeLocker() *ScopeLocker {
	return &ScopeLocker{locks: make(map[string]*scopeLock)}
}

// Lock acquires every key in sorted order and returns the function that
// releases them. Duplicate keys are locked once.
func (l *ScopeLocker) Lock(keys ...string) func() {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*scopeLock, 0, len(keys))

	for _, key := range keys {
		l.mu.Lock()
		entry, ok := l.locks[key]
		if !ok {
			entry = &scopeLock{}
			l.locks[key] = entry
		}
		entry.refs++
		l.mu.Unlock()

		entry.mu.Lock()
		held = append(held, entry)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()

			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, keys[i])
			}
			l.mu.Unlock()
		}
	}
}

func (l *ScopeLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}

func listScope(userID string) string {
	return "lists:" + userID
}

func todoScope(listID string) string {
	return "todos:" + listID
}
