package redisclient

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupClient(t *testing.T) *Client {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	redisContainer, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = redisContainer.Terminate(context.Background()) })

	uri, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)

	client := NewClient(goredis.NewClient(opts))
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestClientRoundTrip(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:abc", "payload", time.Minute).Err())

	val, err := client.Get(ctx, "session:abc").Result()
	require.NoError(t, err)
	assert.Equal(t, "payload", val)

	t.Run("ttl is applied", func(t *testing.T) {
		ttl, err := client.TTL(ctx, "session:abc").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
	})

	t.Run("expire shortens ttl", func(t *testing.T) {
		ok, err := client.Expire(ctx, "session:abc", 5*time.Second).Result()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, client.Del(ctx, "session:abc").Err())
		_, err := client.Get(ctx, "session:abc").Result()
		assert.ErrorIs(t, err, goredis.Nil)
	})
}
