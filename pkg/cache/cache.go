// Package cache provides byte-level caching for computed layouts and rendered
// artifacts.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [MemoryCache]: bounded in-process cache for long-running callers such
//     as the preview, where the same widths recur as the terminal is resized
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] from the full input tuple (image list hash
// plus every option that influences the output), so a hit is always
// equivalent to recomputation.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default time-to-live values per cached stage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache disables caching: every Get misses and writes are dropped.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
