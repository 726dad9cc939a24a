package service

import (
	"context"
	"sync"
	"time"

	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/repository"
)

// Cache lookup results
const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

type cacheEntry struct {
	content  string
	modified time.Time
}

// FileCache holds the last content read from each jcblock file together with
// the modification time it was read at. An entry is served only while the
// file's modification time is unchanged.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewFileCache creates an empty FileCache.
func NewFileCache() *FileCache {
	return &FileCache{entries: make(map[string]cacheEntry)}
}

// Get returns the content of file, reading it again only if it was modified
// since it was cached.
func (c *FileCache) Get(ctx context.Context, file repository.TextFile) (string, error) {
	modified, err := file.ModTime(ctx)
	if err != nil {
		c.Invalidate(file.Path())
		return "", err
	}

	c.mu.Lock()
	entry, ok := c.entries[file.Path()]
	c.mu.Unlock()

	if ok && entry.modified.Equal(modified) {
		metrics.CacheLookups.WithLabelValues(cacheHit).Inc()
		return entry.content, nil
	}
	metrics.CacheLookups.WithLabelValues(cacheMiss).Inc()

	content, err := file.Read(ctx)
	if err != nil {
		c.Invalidate(file.Path())
		return "", err
	}

	c.mu.Lock()
	c.entries[file.Path()] = cacheEntry{content: content, modified: modified}
	c.mu.Unlock()

	return content, nil
}

// Invalidate drops the entry for path.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Observe records a freshly polled modification time for path and drops the
// cached content if it is older. It reports whether an entry was dropped.
func (c *FileCache) Observe(path string, modified time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || entry.modified.Equal(modified) {
		return false
	}
	delete(c.entries, path)
	return true
}

// Len returns the number of cached files.
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
