package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// File Timeouts
const (
	FileHealthCheckTimeout = 2 * time.Second
	PollTimeout            = 5 * time.Second
)

// Background Tasks
const (
	// CacheRefreshInterval is how often the server polls file modification
	// times so stale cache entries are dropped between requests.
	CacheRefreshInterval = 30 * time.Second

	// RateLimiterCleanupInterval is how often idle client limiters are evicted.
	RateLimiterCleanupInterval = 5 * time.Minute

	// RateLimiterIdleTTL is how long a client limiter may sit unused before eviction.
	RateLimiterIdleTTL = 10 * time.Minute
)
