// Package queue defines the reservation event payloads and the message
// brokers that carry them.
package queue

import "time"

// Event types.
const (
	EventConfirmed = "reservation.confirmed"
	EventCancelled = "reservation.cancelled"
)

// ReservationEvent is published whenever a reservation is confirmed or
// cancelled. It carries enough detail for downstream consumers to log or
// notify without reading the application state.
type ReservationEvent struct {
	Type          string  `json:"type"`
	ReservationID string  `json:"reservation_id"`
	Name          string  `json:"name,omitempty"`
	Date          string  `json:"date,omitempty"`
	Time          string  `json:"time,omitempty"`
	Guests        int     `json:"guests,omitempty"`
	TableID       *int    `json:"table_id,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Source        string  `json:"source"` // guest, payment, rp or staff
	OccurredAt    string  `json:"occurred_at"`
}

// Stamp sets OccurredAt from t in RFC 3339 UTC.
func (e *ReservationEvent) Stamp(t time.Time) {
	e.OccurredAt = t.UTC().Format(time.RFC3339)
}
