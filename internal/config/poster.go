package config

import (
    "os"
    "strconv"
    "time"
)

// PosterConfig defines the bounded retry policy and endpoints for the poster
// lookup client.  The defaults reproduce the behaviour of the original
// system: three attempts total with a one second pause between them.  The
// image base URL is prepended to the poster path returned by the metadata API.
type PosterConfig struct {
    MaxAttempts int           // total attempts per lookup (not extra retries)
    RetryDelay  time.Duration // fixed delay between attempts
    APIBaseURL  string        // movie metadata endpoint, keyed by movie id
    ImageBase   string        // base URL poster paths are appended to
}

// LoadPosterConfig reads environment variables to build a PosterConfig.
// Defaults are used when variables are not set.
func LoadPosterConfig() PosterConfig {
    cfg := PosterConfig{
        MaxAttempts: envInt("POSTER_MAX_ATTEMPTS", 3),
        RetryDelay:  envDur("POSTER_RETRY_DELAY", time.Second),
        APIBaseURL:  envStr("POSTER_API_BASE_URL", "https://api.themoviedb.org/3"),
        ImageBase:   envStr("POSTER_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500/"),
    }
    if cfg.MaxAttempts < 1 {
        cfg.MaxAttempts = 1
    }
    if cfg.RetryDelay < 0 {
        cfg.RetryDelay = 0
    }
    return cfg
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
