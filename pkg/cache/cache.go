// Package cache provides a small byte-value cache used to memoize Graphviz
// SVG renders between CLI invocations.
//
// Keys are derived from the DOT source content (see [Hash]), so a cache entry
// is valid for as long as the input file is unchanged. Two implementations
// exist: [FileCache] for persistent on-disk caching and [NullCache] for
// disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// NullCache discards writes and always misses on reads. It stands in for
// [FileCache] when --no-cache is set or no cache directory is usable, so
// callers never branch on whether caching is enabled.
type NullCache struct{}

// NewNullCache creates a cache that caches nothing.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
