package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/studentdesk/studentdesk-backend/internal/response"
)

// RateLimiter implements a fixed-window per-IP limiter backed by Redis, so
// the window survives process restarts and is shared between replicas.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a RateLimiter (e.g. 30 requests per minute).
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Middleware returns a Gin middleware that rate-limits requests by client
// IP. Redis failures fail open: losing the limiter must not take the auth
// endpoints down with it.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:auth:" + c.ClientIP()

		// Single round trip: the counter and its TTL land together, so a
		// crash between them cannot leave an immortal counter. ExpireNX
		// also attaches a TTL to any counter that somehow lost one.
		pipe := rl.rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.window)
		if _, err := pipe.Exec(ctx); err != nil {
			c.Next()
			return
		}

		if incr.Val() > int64(rl.limit) {
			response.AbortFail(c, http.StatusTooManyRequests, response.MsgTooManyRequests)
			return
		}

		c.Next()
	}
}
