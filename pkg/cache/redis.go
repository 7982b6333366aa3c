package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the initial ping when constructing a
// RedisCache.
const connectTimeout = 5 * time.Second

// RedisCache stores entries in a Redis server, sharing the cache
// across processes. TTLs map directly onto Redis key expiration.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to a Redis server and verifies the
// connection with a ping. Pass an empty password and db 0 for a
// default local server.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, wrapNetErr(fmt.Sprintf("ping %s", addr), err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value. Backend failures come back retryable.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapNetErr("get", err)
	}
	return data, true, nil
}

// Set stores a value. A ttl of zero means the key never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return wrapNetErr("set", err)
	}
	return nil
}

// Delete removes a key. Missing keys are ignored by Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return wrapNetErr("del", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// wrapNetErr tags a backend failure as both a network error and
// retryable, so callers can use RetryWithBackoff around cache
// operations.
func wrapNetErr(op string, err error) error {
	return Retryable(fmt.Errorf("redis %s: %w: %w", op, ErrNetwork, err))
}

var _ Cache = (*RedisCache)(nil)
