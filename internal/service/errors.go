package service

import "errors"

// Sentinel errors returned by Service. Handlers translate them into HTTP
// statuses; validation failures are returned as FieldErrors instead.
var (
	// ErrReservationNotFound maps to 404.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTableNotFound maps to 404.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableUnavailable is returned when the chosen table is not available
	// or too small for the party. Maps to 409.
	ErrTableUnavailable = errors.New("table unavailable for this party")

	// ErrPaymentRequired is returned when a plain submission carries a
	// table; tables are only booked through the payment flow. Maps to 402.
	ErrPaymentRequired = errors.New("table reservations require payment")

	// ErrUnknownRole maps to 400.
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidView maps to 400.
	ErrInvalidView = errors.New("invalid view")
)
