package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/movie-night/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/movie-night/internal/middleware" // import middleware for session authentication
)

// RegisterRoutes registers routes that require neither a session nor any
// middleware.  Currently it exposes only a health check for load balancers
// and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the public movie dataset endpoints.  The list of
// titles feeds the selection dropdown.  The passed middleware (rate limit,
// cache) degrades to no-ops when Redis is unavailable.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mws ...echo.MiddlewareFunc) {
    e.GET("/v1/movies", h.ListMovies, mws...)
}

// RegisterBooking registers the booking flow endpoints.  Session creation is
// open; every other route requires a valid Bearer session token, validated
// by the SessionAuth middleware using the provided secret.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, sessionSecret string) {
    // Creating a session is the entry point of the flow and issues the token.
    e.POST("/v1/sessions", b.StartSession)

    // Everything below operates on the caller's session.
    g := e.Group("/v1/session")
    g.Use(middleware.SessionAuth(sessionSecret))
    // Current phase and selection state, for rendering the right screen.
    g.GET("", b.GetSession)
    // Movie selection screen: request recommendations for a title.
    g.POST("/recommendations", b.Recommend)
    // Recommendation screen: pick one of the recommended titles to book.
    g.POST("/book", b.Book)
    // Ticket screen: choose a time slot; the response carries availability.
    g.PUT("/slot", b.SelectSlot)
    // Ticket screen: the seat grid with per-seat booked state.
    g.GET("/seats", b.Seats)
    // Ticket screen: toggle a seat in the current selection.
    g.POST("/seats/toggle", b.ToggleSeat)
    // Ticket screen: confirm with a phone number, persisting and notifying.
    g.POST("/confirm", b.Confirm)
}
