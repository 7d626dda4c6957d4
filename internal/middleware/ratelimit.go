package middleware

import (
    "context"
    "fmt"
    "math"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mtpfood/restaurant-backoffice/internal/config"
)

// limiterScript implements a token bucket in Redis.  State per key is the
// token count and the last refill timestamp; the script refills, then either
// spends one token or reports how long until the next one.
var limiterScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)
    return {allowed, tokens, retry_after_ms}
`)

// NewTokenBucket rate-limits requests per client IP and route.  When Redis is
// unavailable the limiter fails open so the API stays reachable.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.RealIP(), c.Path())

            ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
            res, err := limiterScript.Run(ctx, rdb, []string{key},
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int(cfg.TTL.Seconds()),
            ).Int64Slice()
            cancel()
            if err != nil || len(res) != 3 {
                return next(c) // fail open
            }

            if res[0] != 1 {
                retryAfter := int(math.Ceil(float64(res[2]) / 1000))
                if retryAfter < 1 {
                    retryAfter = 1
                }
                c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
            }
            return next(c)
        }
    }
}
