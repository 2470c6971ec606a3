package repository

import (
	"context"
	"testing"
	"time"

	"bookery/internal/config"
	"bookery/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailoverStatsCache_UsesPrimaryWhenHealthy(t *testing.T) {
	primary, _ := newMiniredisCache(t, time.Minute)
	fallback := NewMemoryStatsCache(time.Minute)
	logger := zerolog.Nop()
	cache := NewFailoverStatsCache(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &models.UserStats{TotalUsers: 3}))

	// the value landed in the primary, not the fallback
	var fromPrimary models.UserStats
	found, err := primary.Get(ctx, "k", &fromPrimary)
	require.NoError(t, err)
	assert.True(t, found)

	var fromFallback models.UserStats
	found, err = fallback.Get(ctx, "k", &fromFallback)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFailoverStatsCache_FallsBackWhenPrimaryDies(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	primary := NewRedisStatsCache(client, time.Minute)
	fallback := NewMemoryStatsCache(time.Minute)
	logger := zerolog.Nop()
	cache := NewFailoverStatsCache(primary, fallback, &logger)
	ctx := context.Background()

	mr.Close()

	require.NoError(t, cache.Set(ctx, "k", &models.UserStats{TotalUsers: 5}))

	var out models.UserStats
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found, "after failover reads are served from memory")
	assert.Equal(t, int64(5), out.TotalUsers)
}

func TestFailoverStatsCache_DeleteTolerantOfDownPrimary(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	primary := NewRedisStatsCache(client, time.Minute)
	fallback := NewMemoryStatsCache(time.Minute)
	logger := zerolog.Nop()
	cache := NewFailoverStatsCache(primary, fallback, &logger)
	ctx := context.Background()

	mr.Close()

	require.NoError(t, cache.Set(ctx, "k", &models.UserStats{TotalUsers: 1}))
	require.NoError(t, cache.Delete(ctx, "k"))

	var out models.UserStats
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
