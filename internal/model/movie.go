package model

// Movie is a single entry from the precomputed movie dataset.  Movies are
// loaded once at startup together with the similarity matrix and are never
// created or modified at runtime.
//
// Fields:
//  ID   : external movie identifier (matches the metadata API).
//  Title: display title, unique within the dataset.
type Movie struct {
    ID    uint64 `json:"id"`    // movie_list id column
    Title string `json:"title"` // movie_list title column
}

// Recommendation pairs a recommended title with its resolved poster image
// URL.  Recommendations are ephemeral: they are built per request and live
// only in session state until the user navigates away.
type Recommendation struct {
    Title     string `json:"title"`      // recommended movie title
    PosterURL string `json:"poster_url"` // full poster image URL
}
