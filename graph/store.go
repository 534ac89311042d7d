package graph

import (
	"sync"
	"time"
)

// Store holds the most recent TreeResult for concurrent readers.
type Store struct {
	mutex   sync.RWMutex
	tree    *TreeResult
	builtAt time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current tree.
func (s *Store) Set(tree *TreeResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tree = tree
	s.builtAt = time.Now()
}

// Get returns the current tree, or nil before the first Set.
// The returned tree must be treated as read-only.
func (s *Store) Get() *TreeResult {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.tree
}

// BuiltAt returns when the current tree was stored.
func (s *Store) BuiltAt() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.builtAt
}
