package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
)

// RateLimit rejects requests with 429 once the shared token bucket is empty.
// A non-positive limit disables limiting.
func RateLimit(limit float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.Warn("rate limit exceeded", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.RateLimitedError())
			return
		}
		c.Next()
	}
}
