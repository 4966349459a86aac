package config

import "time"

// RateLimitConfig controls the Redis token bucket applied to public routes.
// Capacity is the burst size; one token is refilled every RefillInterval.
// TTL bounds how long idle bucket state lives in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillInterval time.Duration
    TTL            time.Duration
    Prefix         string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, clamping values to sane minimums.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envStr("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}
