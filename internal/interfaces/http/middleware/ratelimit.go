package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

// RateLimiter limits requests per client IP over sliding windows shared
// through redis, so every instance sees the same counts.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	scope   string
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, limits ratelimit.Limits, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		limits:  limits,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the limits per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			// Fail open while redis is unavailable.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "scope", rl.scope, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("too many attempts, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
