// Package catalog loads the precomputed movie dataset and similarity matrix
// and answers "which movies are closest to this one" lookups.  The two
// artifacts are produced offline and treated as opaque, read-only data: a
// movie list and a row-major matrix of similarity scores indexed in the same
// row order as the list.
package catalog

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "sort"

    "github.com/iliyamo/movie-night/internal/model"
)

// ErrMovieNotFound is returned when a requested title does not exist in the
// loaded dataset.  Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// Catalog holds the dataset in memory.  It is populated once by Load and is
// read-only afterwards, so it is safe for concurrent use without locking.
type Catalog struct {
    movies     []model.Movie
    similarity [][]float64
    byTitle    map[string]int // title -> row index
}

// Load reads the movie list and similarity matrix from the given JSON files
// and validates that they describe the same number of rows.  The movie file
// contains an array of {id, title} objects; the similarity file contains one
// score row per movie in the same order.
func Load(moviePath, similarityPath string) (*Catalog, error) {
    var movies []model.Movie
    if err := readJSON(moviePath, &movies); err != nil {
        return nil, fmt.Errorf("load movie list: %w", err)
    }
    if len(movies) == 0 {
        return nil, fmt.Errorf("movie list %s is empty", moviePath)
    }

    var sim [][]float64
    if err := readJSON(similarityPath, &sim); err != nil {
        return nil, fmt.Errorf("load similarity matrix: %w", err)
    }
    if len(sim) != len(movies) {
        return nil, fmt.Errorf("similarity matrix has %d rows, movie list has %d", len(sim), len(movies))
    }

    byTitle := make(map[string]int, len(movies))
    for i, m := range movies {
        byTitle[m.Title] = i
    }
    return &Catalog{movies: movies, similarity: sim, byTitle: byTitle}, nil
}

func readJSON(path string, v interface{}) error {
    data, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    return json.Unmarshal(data, v)
}

// Titles returns all known movie titles in dataset order.  The returned
// slice is freshly allocated on every call.
func (c *Catalog) Titles() []string {
    titles := make([]string, 0, len(c.movies))
    for _, m := range c.movies {
        titles = append(titles, m.Title)
    }
    return titles
}

// Has reports whether title exists in the dataset.
func (c *Catalog) Has(title string) bool {
    _, ok := c.byTitle[title]
    return ok
}

// TopMatches returns up to n movies most similar to the given title, ordered
// by descending similarity score.  Ties keep their original row order (the
// sort is stable).  The movie itself is always excluded, so rank 1 of the raw
// row never appears in the result.  Unknown titles yield ErrMovieNotFound.
func (c *Catalog) TopMatches(title string, n int) ([]model.Movie, error) {
    row, ok := c.byTitle[title]
    if !ok {
        return nil, ErrMovieNotFound
    }
    scores := c.similarity[row]

    // Rank every row index by score; keep dataset order for equal scores.
    order := make([]int, len(scores))
    for i := range order {
        order[i] = i
    }
    sort.SliceStable(order, func(a, b int) bool {
        return scores[order[a]] > scores[order[b]]
    })

    matches := make([]model.Movie, 0, n)
    for _, idx := range order {
        if idx == row {
            continue // the movie is always its own best match
        }
        matches = append(matches, c.movies[idx])
        if len(matches) == n {
            break
        }
    }
    return matches, nil
}
