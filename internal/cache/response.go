package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/leonardcser/users-cache/internal/logger"
)

// KeyFunc returns a derivation function rendering keys as
// "<namespace>:user:<id>".
func KeyFunc(namespace string) func(id int) string {
	return func(id int) string {
		return namespace + ":user:" + strconv.Itoa(id)
	}
}

// Response wraps an identifier-keyed operation with cache-aside reads and
// best-effort JSON write-back. On a hit the wrapped operation is not invoked.
// On a miss the operation runs and its result is returned even when the
// write-back fails, so correctness never depends on cache availability.
// Errors from the wrapped operation pass through unchanged and are never
// cached.
//
// Concurrent misses for the same key may each compute and each write, last
// writer winning. There is no single-flight deduplication and no
// invalidation path beyond TTL expiry.
func Response[T any](kv KV, keyFor func(id int) string, ttl time.Duration, op func(ctx context.Context, id int) (T, error)) func(ctx context.Context, id int) (T, error) {
	return func(ctx context.Context, id int) (T, error) {
		key := keyFor(id)

		raw, err := kv.Get(ctx, key)
		if err == nil {
			var cached T
			uerr := json.Unmarshal(raw, &cached)
			if uerr == nil {
				return cached, nil
			}
			logger.Warnf("cache: corrupt entry at %s, recomputing: %v", key, uerr)
		} else if !errors.Is(err, ErrNotFound) {
			logger.Warnf("cache: read %s: %v", key, err)
		}

		result, err := op(ctx, id)
		if err != nil {
			return result, err
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			logger.Errorf("cache: encode %s: %v", key, err)
			return result, nil
		}
		if err := kv.Put(ctx, key, encoded, ttl); err != nil {
			logger.Errorf("cache: write %s: %v", key, err)
		}
		return result, nil
	}
}
