package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T) (*RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client), mr
}

func TestRedisRateLimiter_PerMinute(t *testing.T) {
	limiter, _ := setupLimiter(t)
	ctx := context.Background()
	limits := Limits{PerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "login:10.0.0.1", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "login:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:10.0.0.2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are counted separately")
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	limiter, _ := setupLimiter(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	limits := Limits{PerMinute: 2}
	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "k", limits)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.False(t, ok)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	ok, err = limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_HourWindow(t *testing.T) {
	limiter, _ := setupLimiter(t)
	ctx := context.Background()
	limits := Limits{PerMinute: 10, PerHour: 3}

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "k", limits)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRateLimiter_CountAndReset(t *testing.T) {
	limiter, _ := setupLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "k", Limits{PerMinute: 10})
		require.NoError(t, err)
	}
	n, err := limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, limiter.Reset(ctx, "k"))
	n, err = limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisRateLimiter_RedisDown(t *testing.T) {
	limiter, mr := setupLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k", Limits{PerMinute: 1})
	assert.Error(t, err)
}
