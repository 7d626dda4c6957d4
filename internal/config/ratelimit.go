package config

import "time"

// RateLimitConfig controls the Redis token-bucket limiter applied to the
// public API.  Capacity is the bucket size, RefillTokens/RefillInterval the
// refill rate, and TTL how long an idle bucket survives in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    Prefix         string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiDef(getenv("RATE_LIMIT_CAPACITY", "60"), 60),
        RefillTokens:   atoiDef(getenv("RATE_LIMIT_REFILL_TOKENS", "1"), 1),
        RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
        TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
    }
}

func atoiDef(s string, def int) int {
    if n := atoi(s); n > 0 {
        return n
    }
    return def
}
