package store

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

// RateLimitMemoryStore is an in-memory ratelimit.Store. Keys whose newest
// request is older than their window are swept at most once per minute, so
// one-off clients do not accumulate.
type RateLimitMemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*requestWindow
	now       func() time.Time
	lastSweep time.Time
}

type requestWindow struct {
	span  time.Duration
	times []time.Time
}

func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return NewRateLimitMemoryStoreWithClock(time.Now)
}

func NewRateLimitMemoryStoreWithClock(now func() time.Time) *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		windows:   make(map[string]*requestWindow),
		now:       now,
		lastSweep: now(),
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.windows[key]
	if !ok {
		w = &requestWindow{}
		s.windows[key] = w
	}

	w.span = window
	w.times = append(prune(w.times, now.Add(-window)), now)

	return int64(len(w.times)), nil
}

// prune drops timestamps at or before cutoff. Timestamps are appended in
// order, so the survivors are a suffix.
func prune(times []time.Time, cutoff time.Time) []time.Time {
	for i, ts := range times {
		if ts.After(cutoff) {
			return times[i:]
		}
	}

	return times[:0]
}

func (s *RateLimitMemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}

	s.lastSweep = now

	for key, w := range s.windows {
		if len(w.times) == 0 || !w.times[len(w.times)-1].After(now.Add(-w.span)) {
			delete(s.windows, key)
		}
	}
}

// Keys returns the number of tracked keys.
func (s *RateLimitMemoryStore) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.windows)
}
