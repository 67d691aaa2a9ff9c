package model

import "time"

// Reservation statuses. Only StatusConfirmed is produced by the current
// booking flows; the other values exist so that imported or seeded data can
// carry them.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Reservation records a guest's booking for a date and time slot.
// Reservations are never mutated after creation; cancelling one removes
// it from the collection.
//
// Fields:
//  ID        – unique identifier, timestamp-derived for new bookings.
//  Date      – calendar date in YYYY-MM-DD form.
//  Time      – time of day in HH:MM form.
//  Guests    – party size.
//  Name      – guest name.
//  Email     – guest email address.
//  Phone     – guest phone number.
//  Status    – confirmed, pending or cancelled.
//  TableID   – table chosen during the paid flow, if any.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	TableID   *int      `json:"table_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReservationDraft is the in-progress reservation a guest is filling in.
// Every field is optional until the draft is submitted.
type ReservationDraft struct {
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Guests  int    `json:"guests,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TableID *int   `json:"table_id,omitempty"`
}

// ReservationPatch carries the fields to merge into a ReservationDraft.
// Nil fields leave the draft untouched.
type ReservationPatch struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Guests  *int    `json:"guests,omitempty"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	TableID *int    `json:"table_id,omitempty"`
}

// Merge returns a copy of d with the non-nil fields of p applied.
func (d ReservationDraft) Merge(p ReservationPatch) ReservationDraft {
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Time != nil {
		d.Time = *p.Time
	}
	if p.Guests != nil {
		d.Guests = *p.Guests
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.TableID != nil {
		id := *p.TableID
		d.TableID = &id
	}
	return d
}
