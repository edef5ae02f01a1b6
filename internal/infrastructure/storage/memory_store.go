// Package storage provides the snapshot stores the catalog is persisted to.
package storage

import (
	"context"
	"sync"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// MemoryStore keeps snapshots in process memory. Used for tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

var _ pricebook.SnapshotStore = (*MemoryStore)(nil)

// Load returns a copy of the stored payload
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, pricebook.ErrSnapshotNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save overwrites the payload under key
func (s *MemoryStore) Save(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), payload...)
	return nil
}

// Delete removes the payload under key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }
