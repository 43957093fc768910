package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It backs tests and deployments
// that run without redis; records survive for the process lifetime.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Key]Record
	clock   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[Key]Record),
		clock:   time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *MemoryStore) Save(ctx context.Context, key Key, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(payload))
	copy(data, payload)
	s.records[key] = Record{Data: data, Timestamp: s.clock()}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return record.Data, true, nil
}

func (s *MemoryStore) Age(ctx context.Context, key Key) (time.Duration, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return 0, false, nil
	}
	return s.clock().Sub(record.Timestamp), true, nil
}

func (s *MemoryStore) Clear(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
