// Package ratelimit throttles file mutations per client with token buckets.
// Every classify, rename or delete rewrites a jcblock file on the device, so
// a runaway client is held to a steady rate instead of thrashing the card.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// Limiter is a token bucket for one client. Tokens refill at a fixed rate
// up to the burst capacity and each allowed request consumes one.
type Limiter struct {
	mu       sync.Mutex
	tokens   float64
	rate     float64
	capacity float64
	lastTime time.Time

	// now is replaced in tests
	now func() time.Time
}

// NewLimiter creates a full bucket that refills at rate tokens per second.
func NewLimiter(rate Rate) *Limiter {
	return newLimiterAt(rate, time.Now)
}

func newLimiterAt(rate Rate, now func() time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(rate.Burst),
		rate:     rate.RequestsPerSecond,
		capacity: float64(rate.Burst),
		lastTime: now(),
		now:      now,
	}
}

// refill adds the tokens earned since the last call. Callers hold mu.
func (l *Limiter) refill() time.Time {
	now := l.now()
	l.tokens = math.Min(l.capacity, l.tokens+now.Sub(l.lastTime).Seconds()*l.rate)
	l.lastTime = now
	return now
}

// Allow consumes a token when one is available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// RetryAfter is how long until the next token arrives. It is zero when a
// token is available now.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 || l.rate <= 0 {
		return 0
	}
	return time.Duration((1 - l.tokens) / l.rate * float64(time.Second))
}

// idleSince reports when the limiter was last touched.
func (l *Limiter) idleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTime
}
