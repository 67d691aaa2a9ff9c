package store

import "github.com/iliyamo/goldenhour-reservation/internal/model"

// Action is a state transition request handed to the reducer.
type Action interface {
	ActionType() string
}

// SetView switches the client to View.
type SetView struct {
	View View
}

// UpdateDraft merges Patch into the reservation draft.
type UpdateDraft struct {
	Patch model.ReservationPatch
}

// ConfirmReservation appends a fully formed reservation and moves the client
// to the confirmation view.
type ConfirmReservation struct {
	Reservation model.Reservation
}

// SetSelectedDate stores the date and regenerates the time slots for it.
type SetSelectedDate struct {
	Date string
}

// GenerateTimeSlots regenerates the slots for Date without changing the
// stored selected date.
type GenerateTimeSlots struct {
	Date string
}

// CancelReservation removes the reservation with ID. Unknown ids are a no-op.
type CancelReservation struct {
	ID string
}

// UpdatePayment merges Patch into the payment draft.
type UpdatePayment struct {
	Patch model.PaymentPatch
}

// ProcessPayment only moves the client to the confirmation view. The paid
// reservation must already have been appended with ConfirmReservation.
type ProcessPayment struct {
	Payment model.PaymentDraft
}

// Login makes User the current user and opens the admin view. Users not on
// the roster are ignored.
type Login struct {
	User model.User
}

// Logout clears the current user and returns to the landing view.
type Logout struct{}

func (SetView) ActionType() string            { return "SET_VIEW" }
func (UpdateDraft) ActionType() string        { return "UPDATE_RESERVATION" }
func (ConfirmReservation) ActionType() string { return "CONFIRM_RESERVATION" }
func (SetSelectedDate) ActionType() string    { return "SET_SELECTED_DATE" }
func (GenerateTimeSlots) ActionType() string  { return "GENERATE_TIME_SLOTS" }
func (CancelReservation) ActionType() string  { return "CANCEL_RESERVATION" }
func (UpdatePayment) ActionType() string      { return "UPDATE_PAYMENT" }
func (ProcessPayment) ActionType() string     { return "PROCESS_PAYMENT" }
func (Login) ActionType() string              { return "LOGIN_USER" }
func (Logout) ActionType() string             { return "LOGOUT_USER" }
