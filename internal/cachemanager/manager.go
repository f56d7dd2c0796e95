// Package cachemanager provides small typed caches keyed by strings.
package cachemanager

import (
	"context"
	"time"
)

const (
	// DefaultExpiration is used when the config does not set cache.ttl.
	DefaultExpiration = 10 * time.Minute
	// DefaultCleanupInterval is used when the config does not set
	// cache.cleanup_interval.
	DefaultCleanupInterval = 30 * time.Minute
)

// CacheManager stores values of type V under keys of type K.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Stats() Stats
}

// Stats counts lookups since the cache was created or flushed.
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}
