package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type span struct {
	Start, End string
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := NewInMemoryCacheManager[string, span]("spans", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "a", span{Start: "2024-01-01", End: "2025-01-01"}, 0)

	got, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "2025-01-01", got.End)
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("ints", 0, 0)

	_, ok := cache.Get(context.Background(), "missing")

	require.False(t, ok)
	require.Equal(t, Stats{Misses: 1}, cache.Stats())
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("ints", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("k", "not an int", 0)

	_, ok := cache.Get(context.Background(), "k")

	require.False(t, ok)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("ints", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "k", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get(ctx, "k")
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("ints", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "a", 1, 0)
	cache.Set(ctx, "b", 2, 0)
	cache.Set(ctx, "c", 3, 0)

	cache.Delete(ctx, "a", "b")
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, cache.Stats().Items)

	cache.Flush(ctx)
	require.Equal(t, Stats{}, cache.Stats())
}

func TestInMemoryCacheManager_StatsCountHits(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("ints", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "a", 1, 0)

	cache.Get(ctx, "a")
	cache.Get(ctx, "a")
	cache.Get(ctx, "b")

	require.Equal(t, Stats{Hits: 2, Misses: 1, Items: 1}, cache.Stats())
}
