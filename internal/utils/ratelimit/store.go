package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store hands out one limiter per client key and evicts limiters that have
// been idle longer than the configured TTL.
type Store struct {
	mu       sync.Mutex
	limiters map[string]*Limiter
	rate     Rate
	idleTTL  time.Duration
	now      func() time.Time
}

// NewStore creates a store whose limiters all share rate.
func NewStore(rate Rate, idleTTL time.Duration) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rate:     rate,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the limiter for key, creating a full one on first use.
func (s *Store) Get(key string) *Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = newLimiterAt(s.rate, s.now)
		s.limiters[key] = limiter
	}
	return limiter
}

// Len returns the number of tracked clients.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Evict drops limiters idle for longer than the TTL and returns how many
// were removed. An evicted client starts again with a full bucket, which is
// what its idle time would have earned anyway.
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince().Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

// RunCleanup evicts idle limiters every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Evict(); removed > 0 {
				log.Debug().Int("removed", removed).Int("remaining", s.Len()).Msg("Evicted idle rate limiters")
			}
		}
	}
}
