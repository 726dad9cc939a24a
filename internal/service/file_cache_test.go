package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/jcadmin/internal/repository"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "whitelist.dat")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))
	stamp := time.Date(2016, 1, 19, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	cache := NewFileCache()
	file := repository.NewTextFile(path)

	text, err := cache.Get(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "one\n", text)

	// Same modification time: the cached content is served
	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	text, err = cache.Get(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "one\n", text)

	assert.False(t, cache.Observe(path, stamp))
	assert.True(t, cache.Observe(path, stamp.Add(time.Second)))
	assert.Equal(t, 0, cache.Len())

	text, err = cache.Get(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "two\n", text)

	cache.Invalidate(path)
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_MissingFile(t *testing.T) {
	cache := NewFileCache()

	_, err := cache.Get(context.Background(), repository.NewTextFile(filepath.Join(t.TempDir(), "missing")))

	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}
