package store

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the in-process fallback used when no cache server is
// reachable. Expiry is enforced lazily on read, so no background sweeper
// is required for correctness.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]string
	deadline map[string]time.Time

	now func() time.Time // overridable in tests
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]string),
		deadline: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	if ttl > 0 {
		s.deadline[key] = s.now().Add(ttl)
	} else {
		delete(s.deadline, key)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.deadline[key]; ok && !s.now().Before(d) {
		delete(s.values, key)
		delete(s.deadline, key)
		return "", ErrNotFound
	}
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.deadline, key)
	return nil
}

// Sweep drops every expired entry. Callers may run it periodically to
// bound memory between reads; Get does not depend on it.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, d := range s.deadline {
		if !now.Before(d) {
			delete(s.values, key)
			delete(s.deadline, key)
		}
	}
}
