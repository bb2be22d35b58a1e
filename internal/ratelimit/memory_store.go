package ratelimit

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-instance
// deployments. The mutex makes every update trivially transactional.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Update(ctx context.Context, identifier string, mutate func(Record) (Record, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.records[identifier])
	if err != nil {
		return err
	}
	s.records[identifier] = next
	return nil
}

var _ Store = (*MemoryStore)(nil)
