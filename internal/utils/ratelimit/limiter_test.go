package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2016, 1, 19, 16, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	l := newLimiterAt(Rate{RequestsPerSecond: 2, Burst: 3}, clock.Now)

	// The bucket starts full
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "request %d", i)
	}
	assert.False(t, l.Allow())

	// Half a second at 2/s earns one token
	clock.Advance(500 * time.Millisecond)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestLimiter_RefillCapsAtBurst(t *testing.T) {
	clock := newFakeClock()
	l := newLimiterAt(Rate{RequestsPerSecond: 10, Burst: 2}, clock.Now)

	clock.Advance(time.Hour)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestLimiter_RetryAfter(t *testing.T) {
	clock := newFakeClock()
	l := newLimiterAt(Rate{RequestsPerSecond: 4, Burst: 1}, clock.Now)

	assert.Zero(t, l.RetryAfter())
	assert.True(t, l.Allow())
	assert.Equal(t, 250*time.Millisecond, l.RetryAfter())

	clock.Advance(100 * time.Millisecond)
	assert.InDelta(t, float64(150*time.Millisecond), float64(l.RetryAfter()), float64(time.Microsecond))
}

func TestLimiter_ZeroRateNeverRefills(t *testing.T) {
	clock := newFakeClock()
	l := newLimiterAt(Rate{RequestsPerSecond: 0, Burst: 1}, clock.Now)

	assert.True(t, l.Allow())
	clock.Advance(time.Hour)
	assert.False(t, l.Allow())
	assert.Zero(t, l.RetryAfter())
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(Rate{RequestsPerSecond: 0, Burst: 50})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
