package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/cache"
	"github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
)

// RateLimit enforces a fixed-window request limit per client IP and route.
// Counter state lives in the provided store so limits survive restarts when
// a database-backed store is used.
func RateLimit(store cache.Store, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || max <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.Request.URL.Path)
		count, ttl, err := store.IncrementWithTTL(c.Request.Context(), key, window)
		if err != nil {
			// fail open when the counter store errors
			c.Next()
			return
		}

		remaining := max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(max) {
			retryAfter := int(math.Ceil(ttl.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, errors.ErrRateLimit)
			c.Abort()
			return
		}

		c.Next()
	}
}
