package handler

import (
    "errors"   // for errors.Is comparisons
    "net/http" // HTTP status codes
    "time"     // formatting token expiry

    "github.com/iliyamo/movie-night/internal/booking" // session store and flow state machine
    "github.com/iliyamo/movie-night/internal/catalog" // sentinel lookup errors
    "github.com/iliyamo/movie-night/internal/model"   // seat grid and slot constants
    "github.com/iliyamo/movie-night/internal/utils"   // session token signing
    "github.com/labstack/echo/v4"                     // Echo web framework
)

// BookingHandler maps HTTP requests onto booking flow events.  All
// session-scoped methods assume SessionAuth middleware has already injected
// "session_id" into the context; a missing or unknown session yields 401.
type BookingHandler struct {
    Store         *booking.Store // live sessions
    Flow          *booking.Flow  // the state machine driving the booking
    SessionSecret string         // secret for signing session tokens
    SessionTTLMin int            // token lifetime in minutes
}

// NewBookingHandler constructs a BookingHandler.  Store and Flow must be
// non-nil.
func NewBookingHandler(store *booking.Store, flow *booking.Flow, secret string, ttlMin int) *BookingHandler {
    if store == nil || flow == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Store: store, Flow: flow, SessionSecret: secret, SessionTTLMin: ttlMin}
}

// session resolves the calling session from the context, or nil when the
// token named a session this process no longer knows.
func (h *BookingHandler) session(c echo.Context) *booking.Session {
    id, _ := c.Get("session_id").(string)
    if id == "" {
        return nil
    }
    return h.Store.Get(id)
}

// StartSession handles POST /v1/sessions.  It creates a fresh session in
// the movie selection phase and returns a signed token for it.
func (h *BookingHandler) StartSession(c echo.Context) error {
    s, err := h.Store.Create()
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
    }
    tok, err := utils.NewSessionToken(h.SessionSecret, s.ID, h.SessionTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign session token"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "session_token": tok.Token,
        "expires_at":    tok.Exp.Format(time.RFC3339),
        "phase":         booking.PhaseSelectMovie,
    })
}

// GetSession handles GET /v1/session.  It returns the session's current
// phase and selection state so a client can render the right screen.
func (h *BookingHandler) GetSession(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    return c.JSON(http.StatusOK, s.Snapshot())
}

// Recommend handles POST /v1/session/recommendations.  The body names the
// selected movie; the response carries up to five recommended titles with
// posters.  An empty result is flagged with an explicit message instead of
// a silent empty grid.
func (h *BookingHandler) Recommend(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    var body struct {
        Title string `json:"title"`
    }
    if err := c.Bind(&body); err != nil || body.Title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
    }
    recs, err := h.Flow.Recommendations(c.Request().Context(), s, body.Title)
    if err != nil {
        if errors.Is(err, catalog.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        }
        if errors.Is(err, booking.ErrWrongPhase) {
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build recommendations"})
    }
    resp := echo.Map{
        "phase":           booking.PhaseShowRecommendations,
        "recommendations": recs,
    }
    if len(recs) == 0 {
        resp["message"] = "no suggestions found"
    }
    return c.JSON(http.StatusOK, resp)
}

// Book handles POST /v1/session/book.  The body names one of the pending
// recommendations; the session advances to the ticket phase carrying the
// chosen title.  The response includes the fixed slots and seat grid the
// client renders next.
func (h *BookingHandler) Book(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    var body struct {
        Title string `json:"title"`
    }
    if err := c.Bind(&body); err != nil || body.Title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
    }
    if err := h.Flow.PickRecommendation(s, body.Title); err != nil {
        if errors.Is(err, booking.ErrWrongPhase) {
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "phase":       booking.PhaseBookTicket,
        "title":       body.Title,
        "time_slots":  model.TimeSlots,
        "seat_layout": model.SeatLayout(),
    })
}

// SelectSlot handles PUT /v1/session/slot.  Choosing a slot recomputes seat
// availability for the chosen show, which is returned alongside the grid.
func (h *BookingHandler) SelectSlot(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    var body struct {
        TimeSlot string `json:"time_slot"`
    }
    if err := c.Bind(&body); err != nil || body.TimeSlot == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "time_slot is required"})
    }
    if err := h.Flow.SelectSlot(s, body.TimeSlot); err != nil {
        if errors.Is(err, booking.ErrWrongPhase) {
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return h.Seats(c)
}

// Seats handles GET /v1/session/seats.  It returns the grid with each
// seat's booked flag for the session's chosen show and slot.
func (h *BookingHandler) Seats(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    taken, err := h.Flow.Availability(c.Request().Context(), s)
    if err != nil {
        if errors.Is(err, booking.ErrWrongPhase) {
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        }
        if errors.Is(err, booking.ErrNoTimeSlot) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat availability"})
    }
    type seatView struct {
        Code   string `json:"code"`
        Booked bool   `json:"booked"`
    }
    grid := make([][]seatView, 0, len(model.SeatRows))
    for _, row := range model.SeatLayout() {
        seats := make([]seatView, 0, len(row))
        for _, code := range row {
            _, booked := taken[code]
            seats = append(seats, seatView{Code: code, Booked: booked})
        }
        grid = append(grid, seats)
    }
    snap := s.Snapshot()
    return c.JSON(http.StatusOK, echo.Map{
        "time_slot":      snap.TimeSlot,
        "seats":          grid,
        "selected_seats": snap.SelectedSeats,
    })
}

// ToggleSeat handles POST /v1/session/seats/toggle.  Selecting a free seat
// adds it to the selection; selecting it again removes it.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    var body struct {
        Seat string `json:"seat"`
    }
    if err := c.Bind(&body); err != nil || body.Seat == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat is required"})
    }
    selected, err := h.Flow.ToggleSeat(c.Request().Context(), s, body.Seat)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrWrongPhase):
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        case errors.Is(err, booking.ErrNoTimeSlot),
            errors.Is(err, booking.ErrInvalidSeat),
            errors.Is(err, booking.ErrSeatTaken):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle seat"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "seat":           body.Seat,
        "selected":       selected,
        "selected_seats": s.Snapshot().SelectedSeats,
    })
}

// Confirm handles POST /v1/session/confirm.  On success the seats are
// persisted, the confirmation SMS is sent and the session returns to the
// movie selection phase.  A notification failure still leaves the seats
// persisted: the handler reports 502 and the session stays in the ticket
// phase so the user can retry.
func (h *BookingHandler) Confirm(c echo.Context) error {
    s := h.session(c)
    if s == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown session"})
    }
    var body struct {
        PhoneNumber string `json:"phone_number"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    err := h.Flow.Confirm(c.Request().Context(), s, body.PhoneNumber)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrWrongPhase):
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        case errors.Is(err, booking.ErrEmptyPhone),
            errors.Is(err, booking.ErrNoSeatsSelected),
            errors.Is(err, booking.ErrNoTimeSlot):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        case errors.Is(err, booking.ErrNotificationFailed):
            return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "booking confirmed, ticket details sent to " + body.PhoneNumber,
        "phase":   booking.PhaseSelectMovie,
    })
}
