package services

import (
	"context"
	"os"
	"testing"
	"time"

	"colornotes/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdempotencyStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewIdempotencyStore(ctx, "not a url")
	assert.ErrorContains(t, err, "failed to parse Redis URL")

	_, err = NewIdempotencyStore(ctx, "redis://127.0.0.1:1/0")
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

// Needs a running Redis; set TEST_REDIS_URL to enable.
func TestRedisIdempotencyStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewIdempotencyStore(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	key := utils.NewRequestID()
	defer store.Release(ctx, key)

	ok, err := store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation of the same key must fail")

	require.NoError(t, store.Release(ctx, key))

	ok, err = store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := store.Client.TTL(ctx, idempotencyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
