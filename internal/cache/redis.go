package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements KV on a Redis server. Expiry is delegated entirely to
// Redis's own TTL handling; entries may also be evicted early under memory
// pressure, which callers must tolerate.
type Redis struct {
	client *redis.Client
}

// NewRedis builds a client for the server at host:port. The returned value
// owns the client; call Close on shutdown.
func NewRedis(host, port string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(host, port),
	})}
}

// NewRedisWithClient wraps an existing client, which the caller owns.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
