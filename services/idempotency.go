package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "idempotency:notes:"

// RedisIdempotencyStore remembers recently used Idempotency-Key values.
type RedisIdempotencyStore struct {
	Client *redis.Client
}

// NewIdempotencyStore creates a Redis-backed store and checks the connection.
func NewIdempotencyStore(ctx context.Context, redisURL string) (*RedisIdempotencyStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{Client: client}, nil
}

// Reserve claims key for ttl. It reports false when the key is already held.
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.Client.SetNX(ctx, idempotencyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Release frees key so a failed request can be retried with it.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisIdempotencyStore) Close() error {
	return s.Client.Close()
}
