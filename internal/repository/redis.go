package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBackend stores records as plain string keys. Rooms are written with
// SETEX so every save refreshes the expiration.
type RedisBackend struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisBackend creates a RedisBackend. An empty keyPrefix defaults to "uc:".
func NewRedisBackend(client *redis.Client, keyPrefix string) *RedisBackend {
	if client == nil {
		panic("redis client cannot be nil for RedisBackend")
	}
	if keyPrefix == "" {
		keyPrefix = "uc:"
	}
	return &RedisBackend{client: client, keyPrefix: keyPrefix}
}

func (r *RedisBackend) key(key string) string {
	return r.keyPrefix + key
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis: failed to get %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to set %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: failed to check %s: %w", key, err)
	}
	return n > 0, nil
}
