package session

import (
	"context"
	"sync"
	"time"

	"github.com/smartshop/webapp/pkg/metrics"
)

// MemoryStore is an in-process session store. Good for development and
// tests; not durable across restarts.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	rec map[string]memoryRecord
}

type memoryRecord struct {
	data      map[string]interface{}
	expiresAt time.Time
}

// NewMemoryStore creates a memory store whose records expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{ttl: ttl, rec: map[string]memoryRecord{}}

	// Sweep expired records so long-running servers don't grow unbounded.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			s.mu.Lock()
			for id, r := range s.rec {
				if now.After(r.expiresAt) {
					delete(s.rec, id)
				}
			}
			metrics.SessionsActive.Set(float64(len(s.rec)))
			s.mu.Unlock()
		}
	}()

	return s
}

func (s *MemoryStore) Load(_ context.Context, id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rec[id]
	if !ok || time.Now().After(r.expiresAt) {
		return nil, nil
	}

	// Copy so callers never mutate the stored map directly.
	data := make(map[string]interface{}, len(r.data))
	for k, v := range r.data {
		data[k] = v
	}
	return data, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data map[string]interface{}) error {
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}

	s.mu.Lock()
	s.rec[id] = memoryRecord{data: copied, expiresAt: time.Now().Add(s.ttl)}
	metrics.SessionsActive.Set(float64(len(s.rec)))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.rec, id)
	metrics.SessionsActive.Set(float64(len(s.rec)))
	s.mu.Unlock()
	return nil
}
