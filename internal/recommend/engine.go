// Package recommend produces the top similar movies for a selected title,
// with poster URLs resolved through the poster lookup service.
package recommend

import (
    "context"

    "github.com/iliyamo/movie-night/internal/catalog"
    "github.com/iliyamo/movie-night/internal/model"
)

// MaxRecommendations is how many similar titles one request yields at most.
const MaxRecommendations = 5

// PosterFetcher resolves a movie identifier to a poster URL.  The boolean
// reports whether a poster could be resolved at all; false means the
// candidate should be omitted from the results.
type PosterFetcher interface {
    Fetch(ctx context.Context, movieID uint64) (string, bool)
}

// Engine combines the similarity catalog with a poster fetcher.  Results are
// never cached; every call re-fetches posters for its candidates.
type Engine struct {
    catalog *catalog.Catalog
    posters PosterFetcher
}

// NewEngine returns an Engine over the given catalog and poster fetcher.
// Both dependencies must be non-nil.
func NewEngine(c *catalog.Catalog, p PosterFetcher) *Engine {
    if c == nil || p == nil {
        panic("nil dependency passed to NewEngine")
    }
    return &Engine{catalog: c, posters: p}
}

// Recommend returns up to MaxRecommendations movies most similar to title,
// ordered by descending similarity.  The selected movie itself never
// appears.  Candidates whose poster cannot be resolved after retries are
// skipped, so fewer than five entries (or none at all) may come back.
// Unknown titles yield catalog.ErrMovieNotFound.
func (e *Engine) Recommend(ctx context.Context, title string) ([]model.Recommendation, error) {
    matches, err := e.catalog.TopMatches(title, MaxRecommendations)
    if err != nil {
        return nil, err
    }
    recs := make([]model.Recommendation, 0, len(matches))
    for _, m := range matches {
        url, ok := e.posters.Fetch(ctx, m.ID)
        if !ok {
            continue // unresolved poster, drop the candidate
        }
        recs = append(recs, model.Recommendation{Title: m.Title, PosterURL: url})
    }
    return recs, nil
}
