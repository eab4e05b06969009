package collection

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hyperjump/ruiji/internal/models"
)

// Store holds loaded collections by name for the server. Reads and hot
// reloads (from the file watcher) can happen concurrently.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*models.Collection
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*models.Collection)}
}

// LoadFile loads the transport document at path and stores it under name.
func (s *Store) LoadFile(name, path string) error {
	col, err := Load(path)
	if err != nil {
		return fmt.Errorf("collection %q: %w", name, err)
	}
	col.Name = name
	s.Put(col)
	return nil
}

// Put stores col under col.Name, replacing any previous version.
func (s *Store) Put(col *models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[col.Name] = col
}

// Get returns the collection stored under name.
func (s *Store) Get(name string) (*models.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[name]
	return col, ok
}

// Remove drops the collection stored under name.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
}

// Names returns the stored collection names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored collections.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections)
}
