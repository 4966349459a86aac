package catalog

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/movie-night/internal/model"
)

// writeArtifacts serializes a movie list and similarity matrix into a temp
// directory and returns the two file paths.
func writeArtifacts(t *testing.T, movies []model.Movie, sim [][]float64) (string, string) {
    t.Helper()
    dir := t.TempDir()
    moviePath := filepath.Join(dir, "movie_list.json")
    simPath := filepath.Join(dir, "similarity.json")

    data, err := json.Marshal(movies)
    require.NoError(t, err)
    require.NoError(t, os.WriteFile(moviePath, data, 0o644))

    data, err = json.Marshal(sim)
    require.NoError(t, err)
    require.NoError(t, os.WriteFile(simPath, data, 0o644))
    return moviePath, simPath
}

func testCatalog(t *testing.T) *Catalog {
    t.Helper()
    movies := []model.Movie{
        {ID: 101, Title: "Alpha"},
        {ID: 102, Title: "Beta"},
        {ID: 103, Title: "Gamma"},
        {ID: 104, Title: "Delta"},
        {ID: 105, Title: "Epsilon"},
        {ID: 106, Title: "Zeta"},
        {ID: 107, Title: "Eta"},
    }
    // Row 0 (Alpha): Beta is closest, Gamma and Delta tie, then the rest.
    sim := [][]float64{
        {1.0, 0.9, 0.8, 0.8, 0.7, 0.6, 0.5},
        {0.9, 1.0, 0.4, 0.3, 0.2, 0.1, 0.0},
        {0.8, 0.4, 1.0, 0.5, 0.3, 0.2, 0.1},
        {0.8, 0.3, 0.5, 1.0, 0.2, 0.1, 0.0},
        {0.7, 0.2, 0.3, 0.2, 1.0, 0.4, 0.3},
        {0.6, 0.1, 0.2, 0.1, 0.4, 1.0, 0.2},
        {0.5, 0.0, 0.1, 0.0, 0.3, 0.2, 1.0},
    }
    moviePath, simPath := writeArtifacts(t, movies, sim)
    c, err := Load(moviePath, simPath)
    require.NoError(t, err)
    return c
}

func TestLoadValidatesArtifacts(t *testing.T) {
    movies := []model.Movie{{ID: 1, Title: "Alpha"}, {ID: 2, Title: "Beta"}}

    t.Run("row count mismatch", func(t *testing.T) {
        moviePath, simPath := writeArtifacts(t, movies, [][]float64{{1.0, 0.5}})
        _, err := Load(moviePath, simPath)
        assert.Error(t, err)
    })

    t.Run("missing movie file", func(t *testing.T) {
        _, simPath := writeArtifacts(t, movies, [][]float64{{1.0, 0.5}, {0.5, 1.0}})
        _, err := Load(filepath.Join(t.TempDir(), "nope.json"), simPath)
        assert.Error(t, err)
    })

    t.Run("empty movie list", func(t *testing.T) {
        moviePath, simPath := writeArtifacts(t, []model.Movie{}, [][]float64{})
        _, err := Load(moviePath, simPath)
        assert.Error(t, err)
    })
}

func TestTitlesPreserveDatasetOrder(t *testing.T) {
    c := testCatalog(t)
    assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta"}, c.Titles())
    assert.True(t, c.Has("Delta"))
    assert.False(t, c.Has("Omega"))
}

func TestTopMatchesOrderAndExclusion(t *testing.T) {
    c := testCatalog(t)
    matches, err := c.TopMatches("Alpha", 5)
    require.NoError(t, err)

    require.Len(t, matches, 5)
    titles := make([]string, 0, len(matches))
    for _, m := range matches {
        assert.NotEqual(t, "Alpha", m.Title)
        titles = append(titles, m.Title)
    }
    // Gamma and Delta tie at 0.8; dataset order breaks the tie.
    assert.Equal(t, []string{"Beta", "Gamma", "Delta", "Epsilon", "Zeta"}, titles)
}

func TestTopMatchesShortDataset(t *testing.T) {
    movies := []model.Movie{{ID: 1, Title: "Alpha"}, {ID: 2, Title: "Beta"}}
    moviePath, simPath := writeArtifacts(t, movies, [][]float64{{1.0, 0.5}, {0.5, 1.0}})
    c, err := Load(moviePath, simPath)
    require.NoError(t, err)

    matches, err := c.TopMatches("Alpha", 5)
    require.NoError(t, err)
    require.Len(t, matches, 1)
    assert.Equal(t, "Beta", matches[0].Title)
}

func TestTopMatchesUnknownTitle(t *testing.T) {
    c := testCatalog(t)
    _, err := c.TopMatches("No Such Movie", 5)
    assert.ErrorIs(t, err, ErrMovieNotFound)
}
