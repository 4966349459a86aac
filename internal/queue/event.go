// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// BookingConfirmedEvent is published after seats are persisted for a show.
// It carries enough for downstream consumers to log or audit the booking
// without touching the primary database.  SMSDelivered records whether the
// confirmation message reached the messaging API, which makes the
// reservation/notification divergence visible in the audit trail.
type BookingConfirmedEvent struct {
    ShowTitle    string   `json:"show_title"`
    TimeSlot     string   `json:"time_slot"`
    Seats        []string `json:"seats"`
    PhoneNumber  string   `json:"phone_number"`
    SMSDelivered bool     `json:"sms_delivered"`
    ConfirmedAt  string   `json:"confirmed_at"`
}

// NewBookingConfirmedEvent builds an event stamped with the current UTC time.
func NewBookingConfirmedEvent(show, slot string, seats []string, phone string, delivered bool) BookingConfirmedEvent {
    return BookingConfirmedEvent{
        ShowTitle:    show,
        TimeSlot:     slot,
        Seats:        seats,
        PhoneNumber:  phone,
        SMSDelivered: delivered,
        ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
    }
}
