package memory

import (
	"context"
	"sync"

	"github.com/smartbyte/shopassist/internal/domain"
)

// Store is an in-memory key-value store. It satisfies
// domain.KeyValueStore and is the default backend when no durable
// storage is configured.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Get retrieves a value by key
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

// Set stores a value under a key
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Delete removes a key
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
