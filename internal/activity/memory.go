package activity

import (
	"context"
	"sync"
	"time"
)

// record holds one user's tracked state.
type record struct {
	count        int
	lastAccepted time.Time
	hasAccepted  bool
}

// MemoryStore is the in-memory Store implementation. Records are created
// lazily on first message and never destroyed; the map grows with the number
// of distinct users seen (acceptable for a single-group bot).
//
// All read-modify-write sequences run under the mutex, so concurrent handler
// goroutines never observe torn counter updates.
type MemoryStore struct {
	mu      sync.Mutex
	records map[int64]*record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int64]*record)}
}

func (s *MemoryStore) get(userID int64) *record {
	r, ok := s.records[userID]
	if !ok {
		r = &record{}
		s.records[userID] = r
	}
	return r
}

// Record increments the user's message counter and returns the new count.
func (s *MemoryStore) Record(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.get(userID)
	r.count++
	return r.count, nil
}

// Penalize decrements the user's counter by one, floored at zero.
func (s *MemoryStore) Penalize(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.get(userID)
	if r.count > 0 {
		r.count--
	}
	return nil
}

// CheckCooldown reports whether the user may post now.
func (s *MemoryStore) CheckCooldown(_ context.Context, userID int64, now time.Time, maxBurst int, window time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.get(userID)
	if r.count <= maxBurst || !r.hasAccepted {
		return true, 0, nil
	}

	elapsed := now.Sub(r.lastAccepted)
	if elapsed >= window {
		return true, 0, nil
	}
	return false, window - elapsed, nil
}

// MarkAccepted records now as the user's last accepted message time.
func (s *MemoryStore) MarkAccepted(_ context.Context, userID int64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.get(userID)
	r.lastAccepted = now
	r.hasAccepted = true
	return nil
}
