package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process CounterStore for tests and single-instance
// development. Production deployments use the PostgreSQL store so the counter
// is shared across instances.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*window
	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	start time.Time
	end   time.Time
	count int
}

// NewMemoryStore creates a memory store with background cleanup of expired
// windows. Call Stop on shutdown.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		counters: make(map[string]*window),
		stop:     make(chan struct{}),
	}
	go s.cleanup(cleanupInterval)
	return s
}

// Stop terminates the background cleanup goroutine.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Incr implements CounterStore.
func (s *MemoryStore) Incr(ctx context.Context, key string, windowStart time.Time, windowLen time.Duration) (int, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.counters[key]
	if !ok || w.start.Before(windowStart) {
		w = &window{start: windowStart, end: windowStart.Add(windowLen), count: 0}
		s.counters[key] = w
	}
	w.count++

	return w.count, w.start, nil
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, w := range s.counters {
				if w.end.Before(now) {
					delete(s.counters, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
