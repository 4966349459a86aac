package config

import "time"

// CacheConfig defines settings for the response cache middleware.  Only GET
// responses are cached.  When Enabled is false or no Redis client is
// configured, caching is disabled.  TTL defines the lifetime of entries and
// Prefix namespaces the keys in Redis.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envStr("CACHE_ENABLED", "true") == "true",
        TTL:     envDur("CACHE_TTL", 30*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
