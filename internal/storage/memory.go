package storage

import (
	"context"
	"sync"

	"fincontrol/internal/core"
)

// MemoryStore keeps the snapshot in process memory. Used for tests and
// ephemeral runs; it also counts saves so tests can assert that mutations
// persist.
type MemoryStore struct {
	mu    sync.Mutex
	data  *core.FinanceData
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*core.FinanceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return s.data.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, data *core.FinanceData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// SaveCount reports how many times Save has been called.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
