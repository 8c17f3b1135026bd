// Package ratelimit counts attempts per key in sliding windows.
package ratelimit

import (
	"context"
	"time"
)

// Limits of zero disable that window.
type Limits struct {
	PerMinute int
	PerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
