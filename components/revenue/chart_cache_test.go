package revenue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheExpires(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := NewChartCache(time.Second)
	cache.now = func() time.Time { return now }
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	now = now.Add(2 * time.Second)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCachePurgeDropsExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := NewChartCache(time.Second)
	cache.now = func() time.Time { return now }
	render := func() (string, error) { return "x", nil }

	_, _ = cache.GetOrRender("a", render)
	now = now.Add(500 * time.Millisecond)
	_, _ = cache.GetOrRender("b", render)
	now = now.Add(700 * time.Millisecond)

	assert.Equal(t, 1, cache.Purge())
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) { return "", errors.New("render failed") })
	require.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestChartCacheDisabledWithoutTTL(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}
	_, _ = cache.GetOrRender("key", render)
	_, _ = cache.GetOrRender("key", render)
	assert.Equal(t, 2, calls)

	var nilCache *ChartCache
	assert.Zero(t, nilCache.Len())
	assert.Zero(t, nilCache.Purge())
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "empty", contentHash(nil))
	assert.Equal(t, "empty", contentHash(map[string]any{}))
	assert.Equal(t, contentHash(map[string]any{"a": 1}), contentHash(map[string]any{"a": 1}))
	assert.NotEqual(t, contentHash(map[string]any{"a": 1}), contentHash(map[string]any{"a": 2}))
}
