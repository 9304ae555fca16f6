package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/adapters/cache"
	"inkpost/internal/config"
	cachePorts "inkpost/internal/ports/cache"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		DefaultTTL:     10 * time.Minute,
	}

	return s, cfg
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)

	_, ok := redisCache.(cachePorts.Cache)
	assert.True(t, ok, "should implement Cache interface")

	assert.NoError(t, redisCache.Close(), "should close without errors")
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	assert.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), cache.ErrorFailedToConnect)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	err = redisCache.Set(ctx, "post:slug:understanding-context", `{"id":"p1"}`, 0)
	require.NoError(t, err)

	ttl := s.TTL("post:slug:understanding-context")
	assert.Greater(t, ttl.Seconds(), 0.0, "key should have default TTL set")

	value, err := redisCache.Get(ctx, "post:slug:understanding-context")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"p1"}`, value)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	value, err := redisCache.Get(ctx, "post:slug:missing")

	require.NoError(t, err, "cache miss should not be an error")
	assert.Empty(t, value)
}

func TestRedisCache_Delete(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	require.NoError(t, redisCache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, redisCache.Delete(ctx, "key"))

	value, err := redisCache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Empty(t, value)
}
