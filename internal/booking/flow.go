// Package booking drives the navigation machine at the heart of the
// application: movie selection, recommendation display, then slot and seat
// selection with confirmation.  Every user action arrives as a discrete
// event validated against the session's current phase, independent of
// whatever renders the state.
package booking

import (
    "context"
    "errors"
    "log"
    "strings"

    "github.com/iliyamo/movie-night/internal/model"
    "github.com/iliyamo/movie-night/internal/queue"
    queue_publisher "github.com/iliyamo/movie-night/internal/service"
)

// Sentinel errors returned by flow events.  Handlers translate these into
// HTTP status codes and inline error messages; none of them mutate stored
// state except ErrNotificationFailed, which is returned after the seats
// have already been persisted.
var (
    ErrWrongPhase            = errors.New("action not allowed in current phase")
    ErrUnknownRecommendation = errors.New("title is not among the current recommendations")
    ErrInvalidTimeSlot       = errors.New("invalid time slot")
    ErrNoTimeSlot            = errors.New("no time slot selected")
    ErrInvalidSeat           = errors.New("invalid seat code")
    ErrSeatTaken             = errors.New("seat is already booked")
    ErrEmptyPhone            = errors.New("phone number is required")
    ErrNoSeatsSelected       = errors.New("no seats selected")
    ErrNotificationFailed    = errors.New("booking saved but confirmation message failed")
)

// Recommender produces recommendations for a selected title.
type Recommender interface {
    Recommend(ctx context.Context, title string) ([]model.Recommendation, error)
}

// SeatLedger is the persisted record of taken seats.
type SeatLedger interface {
    BookedSeats(ctx context.Context, show, slot string) (map[string]struct{}, error)
    Reserve(ctx context.Context, show, slot string, seats []string) error
}

// Notifier delivers the booking confirmation message.
type Notifier interface {
    Notify(ctx context.Context, phone, show, slot string, seats []string) error
}

// Flow coordinates the recommendation engine, the seat ledger and the
// notification service on behalf of a session.  The publish hook emits a
// booking.confirmed event after every successful reservation; it defaults
// to the RabbitMQ publisher and is replaceable in tests.
type Flow struct {
    engine   Recommender
    ledger   SeatLedger
    notifier Notifier
    publish  func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewFlow constructs a Flow.  All dependencies must be non-nil.
func NewFlow(engine Recommender, ledger SeatLedger, notifier Notifier) *Flow {
    if engine == nil || ledger == nil || notifier == nil {
        panic("nil dependency passed to NewFlow")
    }
    return &Flow{
        engine:   engine,
        ledger:   ledger,
        notifier: notifier,
        publish:  queue_publisher.PublishBookingConfirmed,
    }
}

// Recommendations handles the "show recommendations" action from the movie
// selection screen.  It asks the engine for similar titles, stores them on
// the session and advances to the recommendation phase.  An unknown title
// surfaces the engine's not-found error and leaves the session untouched.
// An empty result still advances; the caller decides how to present it.
func (f *Flow) Recommendations(ctx context.Context, s *Session, title string) ([]model.Recommendation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseSelectMovie {
        return nil, ErrWrongPhase
    }
    recs, err := f.engine.Recommend(ctx, title)
    if err != nil {
        return nil, err
    }
    s.Recommendations = recs
    s.Phase = PhaseShowRecommendations
    return recs, nil
}

// PickRecommendation handles the "book" action on a recommended title.  The
// title must be one of the session's pending recommendations; it is carried
// forward as the show to book and the session enters the ticket phase.
func (f *Flow) PickRecommendation(s *Session, title string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseShowRecommendations {
        return ErrWrongPhase
    }
    known := false
    for _, r := range s.Recommendations {
        if r.Title == title {
            known = true
            break
        }
    }
    if !known {
        return ErrUnknownRecommendation
    }
    s.ChosenTitle = title
    s.Phase = PhaseBookTicket
    return nil
}

// SelectSlot records the chosen time slot.  Seat availability is derived
// from the ledger per slot, so changing the slot changes which seats render
// as taken; the user's own selection is left alone, as in the original flow.
func (f *Flow) SelectSlot(s *Session, slot string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseBookTicket {
        return ErrWrongPhase
    }
    if !model.ValidTimeSlot(slot) {
        return ErrInvalidTimeSlot
    }
    s.TimeSlot = slot
    return nil
}

// Availability returns the seats already booked for the session's chosen
// show and slot.  It is recomputed from the ledger on every call.
func (f *Flow) Availability(ctx context.Context, s *Session) (map[string]struct{}, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseBookTicket {
        return nil, ErrWrongPhase
    }
    if s.TimeSlot == "" {
        return nil, ErrNoTimeSlot
    }
    return f.ledger.BookedSeats(ctx, s.ChosenTitle, s.TimeSlot)
}

// ToggleSeat flips a seat in the session's selection and reports whether it
// is selected afterwards.  Seats outside the fixed grid are rejected, as
// are seats the ledger already shows as booked for this show and slot.
func (f *Flow) ToggleSeat(ctx context.Context, s *Session, code string) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseBookTicket {
        return false, ErrWrongPhase
    }
    if s.TimeSlot == "" {
        return false, ErrNoTimeSlot
    }
    if !model.ValidSeatCode(code) {
        return false, ErrInvalidSeat
    }
    taken, err := f.ledger.BookedSeats(ctx, s.ChosenTitle, s.TimeSlot)
    if err != nil {
        return false, err
    }
    if _, booked := taken[code]; booked {
        return false, ErrSeatTaken
    }
    return s.toggleSeat(code), nil
}

// Confirm handles the "proceed to payment" action.  Validation failures
// (empty phone, empty selection, missing slot) block the action without
// touching stored state.  On success the seats are persisted first, then
// the confirmation message is sent and a booking.confirmed event is
// published.  When the message fails the seats stay persisted, the session
// remains in the ticket phase and ErrNotificationFailed is returned so the
// user can retry the notification.
func (f *Flow) Confirm(ctx context.Context, s *Session, phone string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.Phase != PhaseBookTicket {
        return ErrWrongPhase
    }
    if strings.TrimSpace(phone) == "" {
        return ErrEmptyPhone
    }
    if len(s.SelectedSeats) == 0 {
        return ErrNoSeatsSelected
    }
    if s.TimeSlot == "" {
        return ErrNoTimeSlot
    }
    seats := s.seatList()
    if err := f.ledger.Reserve(ctx, s.ChosenTitle, s.TimeSlot, seats); err != nil {
        return err
    }

    notifyErr := f.notifier.Notify(ctx, phone, s.ChosenTitle, s.TimeSlot, seats)

    // The reservation is committed either way; the event records whether
    // the confirmation message made it out.
    ev := queue.NewBookingConfirmedEvent(s.ChosenTitle, s.TimeSlot, seats, phone, notifyErr == nil)
    if err := f.publish(ctx, ev); err != nil {
        log.Printf("booking: publish confirmed event failed: %v", err)
    }

    if notifyErr != nil {
        log.Printf("booking: seats %v persisted for %q %s but notification failed: %v",
            seats, s.ChosenTitle, s.TimeSlot, notifyErr)
        return ErrNotificationFailed
    }
    s.reset()
    return nil
}
