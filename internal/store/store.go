package store

import (
	"context"
	"sync"
)

// Store is the small key-value persistence surface behind locally persisted
// state (theme preference, shared-list records). Implementations are
// injected rather than referenced globally so tests can substitute the
// in-memory one.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Len returns the number of stored keys, for health reporting.
	Len(ctx context.Context) (int, error)
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Store holding values in process memory.
func NewMemory() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values), nil
}
