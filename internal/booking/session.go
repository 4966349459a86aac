package booking

import (
    "sort"
    "sync"

    "github.com/iliyamo/movie-night/internal/model"
    "github.com/iliyamo/movie-night/internal/utils"
)

// Phase identifies where a session currently sits in the booking flow.  The
// flow is a straight line: a movie is selected, recommendations are shown,
// a ticket is booked, and a successful confirmation loops back to the start.
type Phase string

const (
    PhaseSelectMovie         Phase = "SELECT_MOVIE"         // initial phase, choosing a movie
    PhaseShowRecommendations Phase = "SHOW_RECOMMENDATIONS" // recommendations on display
    PhaseBookTicket          Phase = "BOOK_TICKET"          // slot/seat selection and confirmation
)

// Session is the process-local state for one user's walk through the flow.
// It holds the current phase, the pending recommendations, the chosen show
// and slot, and the set of currently selected seat codes.  A session is
// created at session start, reset to the initial phase after a successful
// booking and discarded at session end.
type Session struct {
    mu sync.Mutex

    ID              string
    Phase           Phase
    Recommendations []model.Recommendation
    ChosenTitle     string
    TimeSlot        string
    SelectedSeats   map[string]struct{}
}

// newSession returns a Session in the initial phase.
func newSession(id string) *Session {
    return &Session{
        ID:            id,
        Phase:         PhaseSelectMovie,
        SelectedSeats: make(map[string]struct{}),
    }
}

// toggleSeat flips the seat's membership in the selection and reports
// whether the seat is selected afterwards.  Toggling twice is a no-op.
// Callers must hold s.mu.
func (s *Session) toggleSeat(code string) bool {
    if _, ok := s.SelectedSeats[code]; ok {
        delete(s.SelectedSeats, code)
        return false
    }
    s.SelectedSeats[code] = struct{}{}
    return true
}

// seatList returns the selected seat codes in sorted order for
// deterministic persistence and messages.  Callers must hold s.mu.
func (s *Session) seatList() []string {
    seats := make([]string, 0, len(s.SelectedSeats))
    for code := range s.SelectedSeats {
        seats = append(seats, code)
    }
    sort.Strings(seats)
    return seats
}

// reset returns the session to the initial phase with everything cleared.
// Callers must hold s.mu.
func (s *Session) reset() {
    s.Phase = PhaseSelectMovie
    s.Recommendations = nil
    s.ChosenTitle = ""
    s.TimeSlot = ""
    s.SelectedSeats = make(map[string]struct{})
}

// Snapshot is a copyable view of a session for rendering.  It exists so
// handlers never expose the live, mutex-guarded session state.
type Snapshot struct {
    ID              string                 `json:"id"`
    Phase           Phase                  `json:"phase"`
    Recommendations []model.Recommendation `json:"recommendations,omitempty"`
    ChosenTitle     string                 `json:"chosen_title,omitempty"`
    TimeSlot        string                 `json:"time_slot,omitempty"`
    SelectedSeats   []string               `json:"selected_seats"`
}

// Snapshot returns a consistent copy of the session's visible state.
func (s *Session) Snapshot() Snapshot {
    s.mu.Lock()
    defer s.mu.Unlock()
    recs := make([]model.Recommendation, len(s.Recommendations))
    copy(recs, s.Recommendations)
    return Snapshot{
        ID:              s.ID,
        Phase:           s.Phase,
        Recommendations: recs,
        ChosenTitle:     s.ChosenTitle,
        TimeSlot:        s.TimeSlot,
        SelectedSeats:   s.seatList(),
    }
}

// Store keeps live sessions in memory, keyed by ID.  Sessions vanish when
// the process exits; there is no persistence requirement for them.
type Store struct {
    mu       sync.RWMutex
    sessions map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
    return &Store{sessions: make(map[string]*Session)}
}

// Create makes a new session with a random identifier and registers it.
func (st *Store) Create() (*Session, error) {
    id, err := utils.NewSessionID()
    if err != nil {
        return nil, err
    }
    s := newSession(id)
    st.mu.Lock()
    st.sessions[id] = s
    st.mu.Unlock()
    return s, nil
}

// Get returns the session with the given ID, or nil when it is unknown.
func (st *Store) Get(id string) *Session {
    st.mu.RLock()
    defer st.mu.RUnlock()
    return st.sessions[id]
}
