package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the window, counts it and admits the request when
// below the limit. KEYS[1]=key, ARGV: now ms, window start ms, window ms, member, limit.
// Returns the new count or -1 when the request is rejected.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowMs = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)
if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('PEXPIRE', key, windowMs)
  return count + 1
end
return -1
`

// ScriptRunner evaluates Lua scripts; *redis.Client satisfies it.
type ScriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RateLimit admits at most limit requests per window for each user, keyed by
// the authenticated user or the client IP. Redis failures let requests through.
func RateLimit(rdb ScriptRunner, scope string, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c, scope)

		now := time.Now()
		nowMs := now.UnixMilli()
		windowMs := window.Milliseconds()
		member := strconv.FormatInt(now.UnixNano(), 10)

		res, err := rdb.Eval(c.Request.Context(), slidingWindowScript, []string{key},
			nowMs, nowMs-windowMs, windowMs, member, limit).Int()
		if err != nil {
			logger.Warn("rate limiter unavailable", slog.String("key", key), slog.String("error", err.Error()))
			c.Next()
			return
		}

		if res < 0 {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context, scope string) string {
	if id := c.GetInt64(UserIDContextKey); id > 0 {
		return fmt.Sprintf("rate_limit:%s:user:%d", scope, id)
	}
	return fmt.Sprintf("rate_limit:%s:ip:%s", scope, c.ClientIP())
}
