package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps snippets in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snippets map[string][]byte
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snippets: make(map[string][]byte)}
}

// Get returns a copy of the snippet.
func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snippets[name]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(data), true, nil
}

// Put stores a copy of data.
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snippets[name] = slices.Clone(data)
	return nil
}

// Delete removes a snippet.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snippets, name)
	return nil
}

// List returns the sorted snippet names.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.snippets))
	for name := range s.snippets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
