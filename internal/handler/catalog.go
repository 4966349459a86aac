package handler

import (
    "net/http" // HTTP status codes

    "github.com/iliyamo/movie-night/internal/catalog" // loaded movie dataset
    "github.com/labstack/echo/v4"                     // Echo web framework
)

// CatalogHandler exposes the loaded movie dataset.  The dataset is
// immutable after startup, so these endpoints are safe to cache.
type CatalogHandler struct {
    Catalog *catalog.Catalog
}

// NewCatalogHandler constructs a CatalogHandler.  The catalog must be non-nil.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
    if c == nil {
        panic("nil catalog passed to NewCatalogHandler")
    }
    return &CatalogHandler{Catalog: c}
}

// ListMovies handles GET /v1/movies.  It returns every selectable title in
// dataset order, feeding the movie selection dropdown.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "titles": h.Catalog.Titles(),
    })
}
