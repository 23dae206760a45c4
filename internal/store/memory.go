package store

import (
	"context"
	"sync"
)

// MemoryStore is the in-process fallback used when the durable store is
// unavailable, and the default store in tests. Contents do not survive a
// restart.
type MemoryStore struct {
	values sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	val, ok := s.values.Load(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	stored := val.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values.Store(key, stored)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.values.Delete(key)
	return nil
}
