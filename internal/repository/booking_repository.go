package repository

import (
    "context"
    "database/sql"
)

// BookingRepo is the seat ledger: a persisted, append-only set of
// (show title, time slot, seat code) rows.  Seats are never updated or
// deleted and the table carries no uniqueness constraint, so availability
// checks and reservations remain separate operations with last-write-wins
// semantics between racing sessions.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookedSeats returns the set of seat codes already recorded for the given
// show and time slot.  Seats booked under a different show or slot are not
// included.  An empty set is returned when nothing is booked yet.
func (r *BookingRepo) BookedSeats(ctx context.Context, show, slot string) (map[string]struct{}, error) {
    const q = `SELECT seat_code FROM bookings WHERE show_title = ? AND time_slot = ?`
    rows, err := r.db.QueryContext(ctx, q, show, slot)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    taken := make(map[string]struct{})
    for rows.Next() {
        var code string
        if err := rows.Scan(&code); err != nil {
            return nil, err
        }
        taken[code] = struct{}{}
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return taken, nil
}

// Reserve appends one booking row per seat for the given show and slot.
// All rows are written by a single multi-row INSERT inside one transaction,
// so a confirmation lands completely or not at all.  No availability check
// happens here: callers read BookedSeats first, and the window between the
// two calls is an accepted limitation of this ledger.  Passing an empty
// slice has no effect and returns nil.
func (r *BookingRepo) Reserve(ctx context.Context, show, slot string, seats []string) error {
    if len(seats) == 0 {
        return nil
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    query := `INSERT INTO bookings (show_title, time_slot, seat_code) VALUES `
    args := make([]interface{}, 0, len(seats)*3)
    for i, seat := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, show, slot, seat)
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
