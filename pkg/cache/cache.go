// Package cache stores serialized analysis results keyed by graph content
// hash, so re-analyzing an unchanged graph is a lookup instead of a run.
//
// Three backends share one interface: a file cache for CLI usage, a Redis
// cache for the HTTP server, and a null cache that disables caching.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by backends that cannot distinguish a miss from
// an empty value; FileCache and RedisCache signal misses via the found
// return instead.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get returns (nil, false, nil) on a miss - a miss is not an error.
// A zero TTL stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
