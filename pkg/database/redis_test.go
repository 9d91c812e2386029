package database

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/config"
)

func configFor(t *testing.T, mr *miniredis.Miniredis) RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return RedisConfig{Host: mr.Host(), Port: port, PoolSize: 2, DialTimeout: time.Second}
}

func TestRedisConfig_EnvDefaults(t *testing.T) {
	var cfg RedisConfig
	require.NoError(t, config.LoadFrom(&cfg, map[string]string{"REDIS_PORT": "6380"}))

	assert.Equal(t, "localhost:6380", cfg.Addr())
	assert.Equal(t, 20, cfg.PoolSize)
	assert.Equal(t, 3*time.Second, cfg.DialTimeout)

	opts := cfg.Options()
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, time.Second, opts.ReadTimeout)
}

func TestRedisConfig_AddrIPv6(t *testing.T) {
	assert.Equal(t, "[::1]:6379", RedisConfig{Host: "::1", Port: 6379}.Addr())
}

func TestNewRedisClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), configFor(t, mr))
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := configFor(t, mr)
	mr.Close()

	_, err := NewRedisClient(context.Background(), cfg)
	assert.ErrorContains(t, err, "ping redis at")
}

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), configFor(t, mr))
	require.NoError(t, err)
	defer client.Close()

	check := RedisChecker(client)
	assert.NoError(t, check(context.Background()))

	mr.Close()
	assert.Error(t, check(context.Background()))
}
