package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store suitable for single-instance
// deployments and tests. It is concurrency-safe.
type MemoryStore struct {
	mu    sync.Mutex
	data  map[string]*memoryCounter
	clock func() time.Time
}

type memoryCounter struct {
	count     int64
	windowEnd time.Time
}

// NewMemoryStore constructs an in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]*memoryCounter),
		clock: time.Now,
	}
}

// IncrementWithTTL increments the counter for key, resetting it when the
// window has elapsed. Expired entries are reaped lazily on access.
func (s *MemoryStore) IncrementWithTTL(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if window <= 0 {
		window = time.Minute
	}

	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.data[key]
	if !ok || now.After(counter.windowEnd) {
		counter = &memoryCounter{windowEnd: now.Add(window)}
		s.data[key] = counter
	}

	counter.count++

	return counter.count, counter.windowEnd.Sub(now), nil
}
