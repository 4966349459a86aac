package booking

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/movie-night/internal/model"
    "github.com/iliyamo/movie-night/internal/queue"
)

// fakeEngine returns a canned recommendation list.
type fakeEngine struct {
    recs []model.Recommendation
    err  error
}

func (f *fakeEngine) Recommend(context.Context, string) ([]model.Recommendation, error) {
    return f.recs, f.err
}

// memLedger is an in-memory seat ledger with the same semantics as the SQL
// repository: append-only, no uniqueness checks.
type memLedger struct {
    rows       []model.Booking
    reserveErr error
}

func (m *memLedger) BookedSeats(_ context.Context, show, slot string) (map[string]struct{}, error) {
    taken := make(map[string]struct{})
    for _, b := range m.rows {
        if b.ShowTitle == show && b.TimeSlot == slot {
            taken[b.SeatCode] = struct{}{}
        }
    }
    return taken, nil
}

func (m *memLedger) Reserve(_ context.Context, show, slot string, seats []string) error {
    if m.reserveErr != nil {
        return m.reserveErr
    }
    for _, s := range seats {
        m.rows = append(m.rows, model.Booking{ShowTitle: show, TimeSlot: slot, SeatCode: s})
    }
    return nil
}

// fakeNotifier records calls and fails on demand.
type fakeNotifier struct {
    err   error
    calls int
}

func (f *fakeNotifier) Notify(_ context.Context, _, _, _ string, _ []string) error {
    f.calls++
    return f.err
}

// harness bundles a flow over fakes plus the captured published events.
type harness struct {
    flow     *Flow
    ledger   *memLedger
    notifier *fakeNotifier
    events   []queue.BookingConfirmedEvent
    session  *Session
}

func newHarness(t *testing.T, engine Recommender, notifier *fakeNotifier) *harness {
    t.Helper()
    h := &harness{ledger: &memLedger{}, notifier: notifier}
    h.flow = NewFlow(engine, h.ledger, notifier)
    h.flow.publish = func(_ context.Context, ev queue.BookingConfirmedEvent) error {
        h.events = append(h.events, ev)
        return nil
    }
    store := NewStore()
    s, err := store.Create()
    require.NoError(t, err)
    h.session = s
    return h
}

var alphaRecs = []model.Recommendation{
    {Title: "Alpha", PosterURL: "u/alpha"},
    {Title: "Beta", PosterURL: "u/beta"},
}

// advanceToTicket drives the session to the ticket phase for show "Alpha".
func (h *harness) advanceToTicket(t *testing.T, slot string) {
    t.Helper()
    ctx := context.Background()
    _, err := h.flow.Recommendations(ctx, h.session, "Source Movie")
    require.NoError(t, err)
    require.NoError(t, h.flow.PickRecommendation(h.session, "Alpha"))
    require.NoError(t, h.flow.SelectSlot(h.session, slot))
}

func TestRecommendationsAdvancePhase(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})

    recs, err := h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    require.NoError(t, err)
    assert.Equal(t, alphaRecs, recs)
    assert.Equal(t, PhaseShowRecommendations, h.session.Snapshot().Phase)

    // The same event is rejected once the phase moved on.
    _, err = h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestRecommendationsEmptyResultStillAdvances(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: nil}, &fakeNotifier{})

    recs, err := h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    require.NoError(t, err)
    assert.Empty(t, recs)
    assert.Equal(t, PhaseShowRecommendations, h.session.Snapshot().Phase)
}

func TestRecommendationsErrorKeepsPhase(t *testing.T) {
    h := newHarness(t, &fakeEngine{err: errors.New("boom")}, &fakeNotifier{})

    _, err := h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    assert.Error(t, err)
    assert.Equal(t, PhaseSelectMovie, h.session.Snapshot().Phase)
}

func TestPickRecommendationValidatesTitle(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    _, err := h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    require.NoError(t, err)

    assert.ErrorIs(t, h.flow.PickRecommendation(h.session, "Not Recommended"), ErrUnknownRecommendation)
    require.NoError(t, h.flow.PickRecommendation(h.session, "Alpha"))

    snap := h.session.Snapshot()
    assert.Equal(t, PhaseBookTicket, snap.Phase)
    assert.Equal(t, "Alpha", snap.ChosenTitle)
}

func TestSelectSlotValidation(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})

    // Wrong phase first.
    assert.ErrorIs(t, h.flow.SelectSlot(h.session, "1:00 PM"), ErrWrongPhase)

    _, err := h.flow.Recommendations(context.Background(), h.session, "Source Movie")
    require.NoError(t, err)
    require.NoError(t, h.flow.PickRecommendation(h.session, "Alpha"))

    assert.ErrorIs(t, h.flow.SelectSlot(h.session, "2:30 PM"), ErrInvalidTimeSlot)
    require.NoError(t, h.flow.SelectSlot(h.session, "1:00 PM"))
    assert.Equal(t, "1:00 PM", h.session.Snapshot().TimeSlot)
}

func TestToggleSeatIsIdempotent(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    selected, err := h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)
    assert.True(t, selected)
    assert.Equal(t, []string{"S1"}, h.session.Snapshot().SelectedSeats)

    // Toggling the same seat again returns to the unselected state.
    selected, err = h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)
    assert.False(t, selected)
    assert.Empty(t, h.session.Snapshot().SelectedSeats)
}

func TestToggleSeatRejectsInvalidAndBooked(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    _, err := h.flow.ToggleSeat(ctx, h.session, "X9")
    assert.ErrorIs(t, err, ErrInvalidSeat)

    require.NoError(t, h.ledger.Reserve(ctx, "Alpha", "1:00 PM", []string{"M3"}))
    _, err = h.flow.ToggleSeat(ctx, h.session, "M3")
    assert.ErrorIs(t, err, ErrSeatTaken)

    // The same seat is free under another slot.
    taken, err := h.ledger.BookedSeats(ctx, "Alpha", "4:00 PM")
    require.NoError(t, err)
    assert.NotContains(t, taken, "M3")
}

func TestAvailabilityPerSlot(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    require.NoError(t, h.ledger.Reserve(ctx, "Alpha", "1:00 PM", []string{"S5"}))
    require.NoError(t, h.ledger.Reserve(ctx, "Alpha", "4:00 PM", []string{"U9"}))
    require.NoError(t, h.ledger.Reserve(ctx, "Beta", "1:00 PM", []string{"M1"}))

    taken, err := h.flow.Availability(ctx, h.session)
    require.NoError(t, err)
    assert.Contains(t, taken, "S5")
    assert.NotContains(t, taken, "U9") // other slot
    assert.NotContains(t, taken, "M1") // other show
}

func TestConfirmHappyPath(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    _, err := h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)
    _, err = h.flow.ToggleSeat(ctx, h.session, "S2")
    require.NoError(t, err)

    require.NoError(t, h.flow.Confirm(ctx, h.session, "+15551234567"))

    // The flow loops back to movie selection with the selection cleared.
    snap := h.session.Snapshot()
    assert.Equal(t, PhaseSelectMovie, snap.Phase)
    assert.Empty(t, snap.SelectedSeats)
    assert.Empty(t, snap.ChosenTitle)

    taken, err := h.ledger.BookedSeats(ctx, "Alpha", "1:00 PM")
    require.NoError(t, err)
    assert.Contains(t, taken, "S1")
    assert.Contains(t, taken, "S2")
    assert.Len(t, taken, 2)

    assert.Equal(t, 1, h.notifier.calls)
    require.Len(t, h.events, 1)
    assert.Equal(t, "Alpha", h.events[0].ShowTitle)
    assert.Equal(t, []string{"S1", "S2"}, h.events[0].Seats)
    assert.True(t, h.events[0].SMSDelivered)
}

func TestConfirmNotificationFailureKeepsSeatsPersisted(t *testing.T) {
    notifier := &fakeNotifier{err: errors.New("messaging API down")}
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, notifier)
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    _, err := h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)

    err = h.flow.Confirm(ctx, h.session, "+15551234567")
    assert.ErrorIs(t, err, ErrNotificationFailed)

    // Known inconsistency: the reservation is already persisted, but the
    // session stays on the ticket screen so the user can retry.
    taken, lerr := h.ledger.BookedSeats(ctx, "Alpha", "1:00 PM")
    require.NoError(t, lerr)
    assert.Contains(t, taken, "S1")

    snap := h.session.Snapshot()
    assert.Equal(t, PhaseBookTicket, snap.Phase)
    assert.Equal(t, []string{"S1"}, snap.SelectedSeats)

    require.Len(t, h.events, 1)
    assert.False(t, h.events[0].SMSDelivered)
}

func TestConfirmValidationBlocksWithoutMutation(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    // Empty seat selection.
    err := h.flow.Confirm(ctx, h.session, "+15551234567")
    assert.ErrorIs(t, err, ErrNoSeatsSelected)

    _, err = h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)

    // Empty phone number (whitespace counts as empty).
    err = h.flow.Confirm(ctx, h.session, "   ")
    assert.ErrorIs(t, err, ErrEmptyPhone)

    // Nothing was written and nothing was sent.
    taken, lerr := h.ledger.BookedSeats(ctx, "Alpha", "1:00 PM")
    require.NoError(t, lerr)
    assert.Empty(t, taken)
    assert.Zero(t, h.notifier.calls)
    assert.Empty(t, h.events)
    assert.Equal(t, PhaseBookTicket, h.session.Snapshot().Phase)
}

func TestConfirmReserveErrorSurfaces(t *testing.T) {
    h := newHarness(t, &fakeEngine{recs: alphaRecs}, &fakeNotifier{})
    h.advanceToTicket(t, "1:00 PM")
    ctx := context.Background()

    _, err := h.flow.ToggleSeat(ctx, h.session, "S1")
    require.NoError(t, err)

    h.ledger.reserveErr = errors.New("db gone")
    err = h.flow.Confirm(ctx, h.session, "+15551234567")
    assert.Error(t, err)
    assert.NotErrorIs(t, err, ErrNotificationFailed)
    assert.Zero(t, h.notifier.calls)
    assert.Equal(t, PhaseBookTicket, h.session.Snapshot().Phase)
}
