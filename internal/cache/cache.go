package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a shared key-value store for catalog lookups. It never holds
// authoritative reservation state.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get unmarshals the value for key into dest and reports whether the
	// key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
}

// RedisCache stores values as JSON with a per-entry TTL. Writes are
// last-writer-wins; there is no client-side locking.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	err = json.Unmarshal(data, dest)
	if err != nil {
		return false, err
	}

	return true, nil
}
