package storage

import (
	"context"
	"sync"
)

// MemStore keeps objects in memory. Tests use it to assert exactly what the
// pipeline wrote without touching a real bucket.
type MemStore struct {
	mu      sync.Mutex
	objects map[string]Object
	baseURL string
}

func NewMemStore(publicBaseURL string) *MemStore {
	return &MemStore{objects: make(map[string]Object), baseURL: publicBaseURL}
}

func (s *MemStore) Put(ctx context.Context, obj Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = obj
	return nil
}

func (s *MemStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// Get returns the stored object and whether it exists.
func (s *MemStore) Get(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len reports how many objects are stored.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var _ ObjectStore = (*MemStore)(nil)
