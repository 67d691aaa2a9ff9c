// Package validation checks user-entered reservation and payment fields.
// Failures are returned as data keyed by field name.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/slots"
)

const (
	MinGuests = 1
	MaxGuests = 12

	// BookingHorizonMonths is how far ahead guests may book themselves.
	BookingHorizonMonths = 3
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

// OK reports whether no field failed.
func (f FieldErrors) OK() bool { return len(f) == 0 }

// ValidateReservation checks the contact and booking fields of d.
func ValidateReservation(d model.ReservationDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Name is required"
	}

	switch {
	case strings.TrimSpace(d.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(d.Email):
		errs["email"] = "Please enter a valid email"
	}

	switch {
	case strings.TrimSpace(d.Phone) == "":
		errs["phone"] = "Phone is required"
	case !phonePattern.MatchString(d.Phone):
		errs["phone"] = "Please enter a valid phone number"
	}

	if d.Date == "" {
		errs["date"] = "Date is required"
	}
	switch {
	case d.Time == "":
		errs["time"] = "Time is required"
	case !slots.IsSlot(d.Time):
		errs["time"] = "Please select a valid time slot"
	}
	if d.Guests < MinGuests || d.Guests > MaxGuests {
		errs["guests"] = "Number of guests must be between 1 and 12"
	}
	return errs
}

// ValidateGuestReservation is ValidateReservation plus the self-service
// booking window: the date must lie between today and BookingHorizonMonths
// ahead, inclusive, in now's location.
func ValidateGuestReservation(d model.ReservationDraft, now time.Time) FieldErrors {
	errs := ValidateReservation(d)
	if _, failed := errs["date"]; failed {
		return errs
	}

	date, err := time.ParseInLocation("2006-01-02", d.Date, now.Location())
	if err != nil {
		errs["date"] = "Date must be in YYYY-MM-DD format"
		return errs
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		errs["date"] = "Date cannot be in the past"
	} else if date.After(today.AddDate(0, BookingHorizonMonths, 0)) {
		errs["date"] = "Date is too far in the future"
	}
	return errs
}

// ValidatePayment checks the simulated card fields of p.
func ValidatePayment(p model.PaymentDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(p.CardholderName) == "" {
		errs["cardholder_name"] = "Cardholder name is required"
	}
	if len(digits(p.CardNumber)) < 16 {
		errs["card_number"] = "Valid card number is required"
	}
	if len(p.ExpiryDate) < 5 {
		errs["expiry_date"] = "Valid expiry date is required"
	}
	if len(p.CVV) < 3 {
		errs["cvv"] = "Valid CVV is required"
	}
	return errs
}

// FormatCardNumber keeps at most 16 digits of s and groups them by four.
// Input with fewer than four digits is returned as bare digits.
func FormatCardNumber(s string) string {
	d := digits(s)
	if len(d) < 4 {
		return d
	}
	if len(d) > 16 {
		d = d[:16]
	}
	var b strings.Builder
	for i := 0; i < len(d); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := min(i+4, len(d))
		b.WriteString(d[i:end])
	}
	return b.String()
}

// FormatExpiry turns MMYY digits into MM/YY.
func FormatExpiry(s string) string {
	d := digits(s)
	if len(d) < 2 {
		return d
	}
	if len(d) > 4 {
		d = d[:4]
	}
	return d[:2] + "/" + d[2:]
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
