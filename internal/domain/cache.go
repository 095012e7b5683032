package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error type for cache lookups.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss means the key holds no value.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the string key/value store behind the parse-result cache.
type Cache interface {
	// Get returns ErrCacheMiss for an absent key.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites any existing value. A zero expiration never expires.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Ping(ctx context.Context) error
}
