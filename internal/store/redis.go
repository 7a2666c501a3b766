// ABOUTME: Redis implementation of the KV interface using go-redis
// ABOUTME: Connection parameters are injected at construction, never read from globals

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV on top of a Redis connection. The client is created
// once and shared process-wide; pooling and per-command timeouts are
// delegated to go-redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV opens a Redis connection with the given parameters. A zero
// dialTimeout uses the client default.
func NewRedisKV(host string, port, db int, dialTimeout time.Duration) *RedisKV {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", host, port),
		DB:          db,
		DialTimeout: dialTimeout,
	})
	return &RedisKV{client: client}
}

// Get returns the string value at key.
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyMissing
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set writes the string value at key with no expiry.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Del removes the key and reports whether it existed.
func (r *RedisKV) Del(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	return n > 0, nil
}

// Append pushes a value onto the tail of the list at key.
func (r *RedisKV) Append(ctx context.Context, key, value string) error {
	if err := r.client.RPush(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("redis rpush %s: %w", key, err)
	}
	return nil
}

// Range returns the full list at key. Redis treats a missing list key as
// empty, which matches the KV contract.
func (r *RedisKV) Range(ctx context.Context, key string) ([]string, error) {
	vals, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", key, err)
	}
	return vals, nil
}

// Remove deletes all occurrences of value from the list at key.
func (r *RedisKV) Remove(ctx context.Context, key, value string) error {
	if err := r.client.LRem(ctx, key, 0, value).Err(); err != nil {
		return fmt.Errorf("redis lrem %s: %w", key, err)
	}
	return nil
}

// Ping verifies connectivity to the Redis server.
func (r *RedisKV) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the client connection pool.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
