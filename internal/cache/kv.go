package cache

import (
	"context"
	"errors"
	"time"
)

// KV defines the minimal key-value cache contract with TTL semantics.
// Implementations must be safe for concurrent use by multiple goroutines.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ErrNotFound is returned by Get when a key is absent or its entry has
// already expired.
var ErrNotFound = errors.New("cache: not found")
