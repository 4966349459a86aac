// Package poster resolves movie identifiers to poster image URLs through an
// external metadata API.  Lookups are retried a fixed number of times with a
// fixed pause between attempts; a movie whose poster cannot be resolved is
// simply reported as "no result" so the caller can omit it.
package poster

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/iliyamo/movie-night/internal/config"
)

// Client performs poster lookups against the configured metadata API.
type Client struct {
    cfg    config.PosterConfig
    apiKey string
    http   *http.Client
}

// NewClient returns a Client using the given retry policy and API key.  The
// underlying HTTP client gets a request timeout so a hung lookup cannot
// stall the whole recommendation request indefinitely.
func NewClient(cfg config.PosterConfig, apiKey string) *Client {
    return &Client{
        cfg:    cfg,
        apiKey: apiKey,
        http:   &http.Client{Timeout: 10 * time.Second},
    }
}

// metadataResponse carries the single field we need from the API body.
type metadataResponse struct {
    PosterPath string `json:"poster_path"`
}

// Fetch resolves the poster URL for a movie.  It makes up to MaxAttempts
// requests, sleeping RetryDelay between them.  An attempt fails when the
// transport errors, the response status is not 2xx, or the poster path field
// is absent or empty.  After exhausting all attempts it returns ("", false);
// this is not an error condition, the caller drops the candidate instead.
func (c *Client) Fetch(ctx context.Context, movieID uint64) (string, bool) {
    url := fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US", c.cfg.APIBaseURL, movieID, c.apiKey)
    for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
        path, err := c.tryFetch(ctx, url)
        if err == nil {
            return c.cfg.ImageBase + path, true
        }
        log.Printf("poster: movie %d attempt %d/%d failed: %v", movieID, attempt, c.cfg.MaxAttempts, err)
        if attempt < c.cfg.MaxAttempts {
            time.Sleep(c.cfg.RetryDelay)
        }
    }
    return "", false
}

// tryFetch performs a single lookup attempt and returns the raw poster path.
func (c *Client) tryFetch(ctx context.Context, url string) (string, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return "", err
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
    }
    var body metadataResponse
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return "", fmt.Errorf("decode response: %w", err)
    }
    if body.PosterPath == "" {
        return "", fmt.Errorf("poster path missing in response")
    }
    return body.PosterPath, nil
}
