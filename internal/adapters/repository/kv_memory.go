package repository

import (
	"context"
	"sync"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/ports"
)

// MemoryKVStoreImpl implements the KVStore interface in process memory.
// Used in tests and as a throwaway backend for local development.
type MemoryKVStoreImpl struct {
	mu     sync.RWMutex
	values map[string]map[string][]byte
}

// NewMemoryKVStore creates an in-memory KV store.
func NewMemoryKVStore() ports.KVStore {
	return &MemoryKVStoreImpl{values: make(map[string]map[string][]byte)}
}

func (s *MemoryKVStoreImpl) Get(_ context.Context, userID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[userID][key]
	if !ok {
		return nil, entities.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryKVStoreImpl) Set(_ context.Context, userID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values[userID] == nil {
		s.values[userID] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[userID][key] = stored
	return nil
}

func (s *MemoryKVStoreImpl) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values[userID], key)
	return nil
}
