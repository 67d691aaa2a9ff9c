// Package store holds the in-memory application state and the reducer that
// applies actions to it.
package store

import "github.com/iliyamo/goldenhour-reservation/internal/model"

// View identifies the screen the client should present.
type View string

const (
	ViewLanding      View = "landing"
	ViewReservation  View = "reservation"
	ViewConfirmation View = "confirmation"
	ViewAdmin        View = "admin"
	ViewPayment      View = "payment"
)

// ValidView reports whether v is a known view.
func ValidView(v View) bool {
	switch v {
	case ViewLanding, ViewReservation, ViewConfirmation, ViewAdmin, ViewPayment:
		return true
	}
	return false
}

// State is the application state root. A State value is treated as
// immutable once published by the Store: the reducer always builds a new
// State and allocates new slices for any collection it changes.
type State struct {
	CurrentView  View                   `json:"current_view"`
	Draft        model.ReservationDraft `json:"draft"`
	Reservations []model.Reservation    `json:"reservations"`
	SelectedDate string                 `json:"selected_date"`
	TimeSlots    []model.TimeSlot       `json:"time_slots"`
	Tables       []model.Table          `json:"tables"`
	Payment      model.PaymentDraft     `json:"payment"`
	CurrentUser  *model.User            `json:"current_user"`
	Users        []model.User           `json:"users"`
}

// FindReservation returns the reservation with the given id.
func (s *State) FindReservation(id string) (model.Reservation, bool) {
	for _, r := range s.Reservations {
		if r.ID == id {
			return r, true
		}
	}
	return model.Reservation{}, false
}

// FindTable returns the table with the given id.
func (s *State) FindTable(id int) (model.Table, bool) {
	for _, t := range s.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return model.Table{}, false
}

// FindUserByRole returns the first roster user holding role.
func (s *State) FindUserByRole(role string) (model.User, bool) {
	for _, u := range s.Users {
		if u.Role == role {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *State) hasUser(id string) bool {
	for _, u := range s.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}
