package model

import (
    "fmt"
    "time"
)

// Booking records one reserved seat for a show at a time slot.  Rows are
// append-only; they are never updated or deleted.  Note that the table has
// no uniqueness constraint on (show, slot, seat): double booking between
// racing sessions is an accepted limitation of this system.
//
// Fields:
//  ShowTitle: title of the booked show.
//  TimeSlot : one of the five fixed showtimes.
//  SeatCode : row letter + column number, e.g. "M7".
//  CreatedAt: creation timestamp.
type Booking struct {
    ShowTitle string    // bookings.show_title
    TimeSlot  string    // bookings.time_slot
    SeatCode  string    // bookings.seat_code
    CreatedAt time.Time // bookings.created_at
}

// TimeSlots are the five fixed showtimes offered for every movie.
var TimeSlots = []string{"10:00 AM", "1:00 PM", "4:00 PM", "7:00 PM", "10:00 PM"}

// SeatRows and SeatsPerRow describe the fixed seating grid shared by all
// shows: three rows of ten seats each.
var SeatRows = []string{"S", "M", "U"}

const SeatsPerRow = 10

// ValidTimeSlot reports whether slot is one of the fixed showtimes.
func ValidTimeSlot(slot string) bool {
    for _, s := range TimeSlots {
        if s == slot {
            return true
        }
    }
    return false
}

// ValidSeatCode reports whether code names a seat in the fixed grid
// ("S1".."S10", "M1".."M10", "U1".."U10").
func ValidSeatCode(code string) bool {
    for _, row := range SeatRows {
        for n := 1; n <= SeatsPerRow; n++ {
            if code == fmt.Sprintf("%s%d", row, n) {
                return true
            }
        }
    }
    return false
}

// SeatLayout returns the grid as rows of seat codes, in display order.  The
// slice is rebuilt on every call so callers may modify it freely.
func SeatLayout() [][]string {
    layout := make([][]string, 0, len(SeatRows))
    for _, row := range SeatRows {
        seats := make([]string, 0, SeatsPerRow)
        for n := 1; n <= SeatsPerRow; n++ {
            seats = append(seats, fmt.Sprintf("%s%d", row, n))
        }
        layout = append(layout, seats)
    }
    return layout
}
