package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"toysns/internal/platform/http/response"
	"toysns/internal/shared/apperr"
	"toysns/internal/shared/ratelimiter"
)

// RateLimit rejects requests over the limiter's budget with TOO_MANY_REQUESTS.
// The key is the client IP plus the route, so each endpoint has its own budget.
// A limiter failure lets the request through.
func RateLimit(limiter ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limit check failed", "error", err, "key", key)
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "key", key, "remote_addr", c.ClientIP())
			response.Error(c, apperr.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
