package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements the Cache interface using Redis.
// It does not own the client; whoever created the client closes it.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisClient parses redisURL and returns a go-redis client.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewRedisAdapterFromClient wraps an existing client, e.g. one shared with the delivery store.
func NewRedisAdapterFromClient(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// SetNX stores the value only if the key does not exist yet.
func (r *RedisAdapter) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	created, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx key %s: %w", key, err)
	}
	return created, nil
}

// Delete removes a value from Redis by key.
func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
