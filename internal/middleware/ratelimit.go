package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stuartshay/otel-data-api/internal/model"
)

// RateLimit enforces a fixed-window per-IP request limit backed by
// redis. On redis errors the request is allowed through; limiting is
// protective, not load-bearing.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	if window < time.Second {
		window = time.Second
	}
	return func(c *gin.Context) {
		windowStart := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("ratelimit:ip:%s:%d", c.ClientIP(), windowStart)

		pipe := rdb.Pipeline()
		count := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			log.Printf("[RateLimit] Redis error, allowing request: %v", err)
			c.Next()
			return
		}

		if count.Val() > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{Detail: "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
