package qr

import (
	"bytes"
	"encoding/json"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
)

// Outcome classifies a scan attempt.
type Outcome string

const (
	OutcomeMatched       Outcome = "matched"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeInvalidFormat Outcome = "invalid_format"
)

const (
	msgNotFound      = "Reservation not found"
	msgInvalidFormat = "Invalid QR code format"
)

// MatchResult is the tagged result of Match. Reservation and Payload are set
// only when Outcome is OutcomeMatched; Message is set otherwise.
type MatchResult struct {
	Outcome     Outcome            `json:"outcome"`
	Reservation *model.Reservation `json:"reservation,omitempty"`
	Payload     *Payload           `json:"payload,omitempty"`
	Message     string             `json:"message,omitempty"`
}

// Matched reports whether the scan resolved to a reservation.
func (m MatchResult) Matched() bool { return m.Outcome == OutcomeMatched }

// Match decodes a scanned payload and looks its id up in reservations by
// exact match. Only input that is not JSON at all, or is JSON null, is an
// invalid format. Any other JSON value without a string id, or with an
// unknown one, is not found. reservations is only read.
func Match(raw string, reservations []model.Reservation) MatchResult {
	trimmed := bytes.TrimSpace([]byte(raw))
	if !json.Valid(trimmed) || bytes.Equal(trimmed, []byte("null")) {
		return MatchResult{Outcome: OutcomeInvalidFormat, Message: msgInvalidFormat}
	}

	// numbers, strings and arrays decode to no fields and fall through to
	// not found
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(trimmed, &fields)

	var id string
	if err := json.Unmarshal(fields["id"], &id); err != nil {
		return MatchResult{Outcome: OutcomeNotFound, Message: msgNotFound}
	}

	for i := range reservations {
		if reservations[i].ID != id {
			continue
		}
		found := reservations[i]

		// other fields are informational; a wrongly typed one is left zero
		p := Payload{ID: id}
		decodeField(fields, "name", &p.Name)
		decodeField(fields, "date", &p.Date)
		decodeField(fields, "time", &p.Time)
		decodeField(fields, "guests", &p.Guests)
		decodeField(fields, "phone", &p.Phone)
		decodeField(fields, "email", &p.Email)
		decodeField(fields, "venue", &p.Venue)
		decodeField(fields, "status", &p.Status)

		return MatchResult{Outcome: OutcomeMatched, Reservation: &found, Payload: &p}
	}
	return MatchResult{Outcome: OutcomeNotFound, Message: msgNotFound}
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, dst)
	}
}
