package middleware

import (
    "bytes"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/movie-night/internal/config"
)

// bodyCapture buffers the response body while forwarding it to the client so
// a successful response can be stored in the cache afterwards.
type bodyCapture struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (bc *bodyCapture) WriteHeader(code int) {
    bc.status = code
    bc.ResponseWriter.WriteHeader(code)
}

func (bc *bodyCapture) Write(b []byte) (int, error) {
    bc.buf.Write(b)
    return bc.ResponseWriter.Write(b)
}

// NewRedisCache returns a middleware that serves GET responses from Redis.
// Only 200 responses with a JSON body are stored; anything else passes
// through untouched.  With caching disabled or no Redis client, the
// middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cfg.Prefix + ":" + c.Path()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil && len(body) > 0 {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            bc := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = bc
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if bc.status == http.StatusOK && bc.buf.Len() > 0 {
                // Best effort; a failed SET only costs the next request a miss.
                _ = rdb.Set(ctx, key, bc.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}
