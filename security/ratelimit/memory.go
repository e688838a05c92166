package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	attempts     []time.Time
	blockedUntil time.Time
}

// MemoryStore keeps limiter state in a process-local map. State is lost
// on restart, which is acceptable for a single-instance deployment.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Record(_ context.Context, key string, now time.Time, window time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.attempts = trim(e.attempts, now.Add(-window))
	e.attempts = append(e.attempts, now)
	return nil
}

func (s *MemoryStore) Count(_ context.Context, key string, now time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		return 0, nil
	}
	e.attempts = trim(e.attempts, now.Add(-window))
	return len(e.attempts), nil
}

func (s *MemoryStore) Block(_ context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.blockedUntil = until
	return nil
}

func (s *MemoryStore) BlockedUntil(_ context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		return time.Time{}, nil
	}
	return e.blockedUntil, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Prune drops entries with no recent attempts and no active block.
// Called periodically from the cron worker.
func (s *MemoryStore) Prune(now time.Time, maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-maxAge)
	for k, e := range s.entries {
		e.attempts = trim(e.attempts, cutoff)
		if len(e.attempts) == 0 && e.blockedUntil.Before(now) {
			delete(s.entries, k)
		}
	}
}

// trim drops attempts at or before the cutoff; attempts are appended in
// order, so the slice stays sorted.
func trim(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}
