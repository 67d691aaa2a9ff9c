// Package qr builds the check-in payload embedded in a reservation's QR code
// and resolves scanned payloads back to reservations.
package qr

import (
	"encoding/json"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
)

// Venue is the fixed venue label carried by every payload.
const Venue = "The Golden Hour Lounge"

// Payload is the structured content of a check-in code. Field order is the
// canonical serialization order.
type Payload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Venue  string `json:"venue"`
	Status string `json:"status,omitempty"`
}

// BuildPayload returns the payload for a confirmed reservation.
func BuildPayload(r model.Reservation) Payload {
	return Payload{
		ID:     r.ID,
		Name:   r.Name,
		Date:   r.Date,
		Time:   r.Time,
		Guests: r.Guests,
		Phone:  r.Phone,
		Email:  r.Email,
		Venue:  Venue,
		Status: model.StatusConfirmed,
	}
}

// DemoPayload returns the reduced payload used by the hostess demo codes:
// no contact details and no status.
func DemoPayload(r model.Reservation) Payload {
	return Payload{
		ID:     r.ID,
		Name:   r.Name,
		Date:   r.Date,
		Time:   r.Time,
		Guests: r.Guests,
		Venue:  Venue,
	}
}

// Encode serializes p as compact JSON.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
