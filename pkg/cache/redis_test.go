package cache

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url}
}

func TestOptions(t *testing.T) {
	t.Run("applies pool size", func(t *testing.T) {
		opts, err := Options(&config.Config{RedisURL: "redis://cache:6379/2", RedisPoolSize: 20})
		require.NoError(t, err)
		assert.Equal(t, "cache:6379", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 20, opts.PoolSize)
		assert.Equal(t, 4, opts.MinIdleConns)
	})

	t.Run("defaults pool size", func(t *testing.T) {
		opts, err := Options(newTestConfig("redis://localhost:6379"))
		require.NoError(t, err)
		assert.Equal(t, defaultPoolSize, opts.PoolSize)
		assert.Equal(t, 2, opts.MinIdleConns)
	})

	t.Run("rejects invalid url", func(t *testing.T) {
		_, err := Options(newTestConfig("not-a-valid-url"))
		assert.Error(t, err)
	})
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	assert.Error(t, err)
}

func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	require.NoError(t, err)

	require.NoError(t, rc.Ping(context.Background()))
	assert.NotNil(t, rc.Client())
	require.NoError(t, rc.Close())
}
