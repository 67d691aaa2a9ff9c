package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/queue"
	"github.com/iliyamo/goldenhour-reservation/internal/slots"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
	"github.com/iliyamo/goldenhour-reservation/internal/validation"
)

// ValidationError reports user-entered fields that failed validation.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// PaymentRequest is a guest submission that books a specific table.
type PaymentRequest struct {
	Reservation model.ReservationPatch `json:"reservation"`
	TableID     int                    `json:"table_id"`
	Payment     model.PaymentPatch     `json:"payment"`
}

func (s *Service) newReservation(d model.ReservationDraft, tableID *int) model.Reservation {
	return model.Reservation{
		ID:        s.newID(),
		Date:      d.Date,
		Time:      d.Time,
		Guests:    d.Guests,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Status:    model.StatusConfirmed,
		TableID:   tableID,
		CreatedAt: s.now(),
	}
}

// SubmitGuest merges p into the draft, validates it for self-service and,
// after the simulated submission delay, confirms the reservation. A
// submission that names a table must go through Pay instead. A table left in
// the draft by an earlier selection is ignored.
func (s *Service) SubmitGuest(ctx context.Context, p model.ReservationPatch) (model.Reservation, error) {
	if p.TableID != nil {
		return model.Reservation{}, ErrPaymentRequired
	}
	draft := s.UpdateDraft(p)
	errs := validation.ValidateGuestReservation(draft, s.now())
	s.checkSlotFree(draft, errs)
	if !errs.OK() {
		return model.Reservation{}, &ValidationError{Fields: errs}
	}

	s.sleep(s.submitDelay)

	res := s.newReservation(draft, nil)
	s.store.Dispatch(store.ConfirmReservation{Reservation: res})
	s.logger.Infow("reservation confirmed", "reservation_id", res.ID, "date", res.Date, "time", res.Time, "guests", res.Guests, "source", sourceGuest)
	s.publish(ctx, reservationEvent(queue.EventConfirmed, sourceGuest, res))
	return res, nil
}

// Pay books req.TableID for the draft. The amount charged is the table
// price. Once validation passes, the simulated processing delay always runs
// to completion, whatever happens to ctx.
func (s *Service) Pay(ctx context.Context, req PaymentRequest) (model.Reservation, error) {
	// the table travels with the request only; the shared draft never holds it
	tableID := req.TableID
	req.Reservation.TableID = nil
	draft := s.UpdateDraft(req.Reservation)
	draft.TableID = &tableID

	table, ok := s.store.Snapshot().FindTable(tableID)
	if !ok {
		return model.Reservation{}, ErrTableNotFound
	}

	errs := validation.ValidateGuestReservation(draft, s.now())
	if _, bad := errs["guests"]; !bad && !table.Selectable(draft.Guests) {
		return model.Reservation{}, ErrTableUnavailable
	}
	s.checkSlotFree(draft, errs)

	patch := formatPaymentPatch(req.Payment)
	amount := table.Price
	patch.TableID = &tableID
	patch.Amount = &amount
	payment := s.store.Dispatch(store.UpdatePayment{Patch: patch}).Payment

	for field, msg := range validation.ValidatePayment(payment) {
		errs[field] = msg
	}
	if !errs.OK() {
		return model.Reservation{}, &ValidationError{Fields: errs}
	}

	s.sleep(s.paymentDelay)

	res := s.newReservation(draft, &tableID)
	s.store.Dispatch(store.ConfirmReservation{Reservation: res})
	s.store.Dispatch(store.ProcessPayment{Payment: payment})
	s.logger.Infow("paid reservation confirmed", "reservation_id", res.ID, "table_id", tableID, "amount", amount, "source", sourcePayment)

	ev := reservationEvent(queue.EventConfirmed, sourcePayment, res)
	ev.Amount = amount
	s.publish(ctx, ev)
	return res, nil
}

// checkSlotFree adds a time error when a reservation already holds the
// draft's date and time. Drafts with a bad date or time are left alone.
func (s *Service) checkSlotFree(d model.ReservationDraft, errs validation.FieldErrors) {
	if _, bad := errs["date"]; bad {
		return
	}
	if _, bad := errs["time"]; bad {
		return
	}
	if slots.Taken(d.Date, d.Time, s.store.Snapshot().Reservations) {
		errs["time"] = "This time slot is no longer available"
	}
}

// CreateForClient confirms a reservation entered by a relationship manager.
// The booking window and the taken-slot check do not apply and there is no
// artificial delay.
func (s *Service) CreateForClient(ctx context.Context, d model.ReservationDraft) (model.Reservation, error) {
	d.TableID = nil
	if errs := validation.ValidateReservation(d); !errs.OK() {
		return model.Reservation{}, &ValidationError{Fields: errs}
	}

	res := s.newReservation(d, nil)
	s.store.Dispatch(store.ConfirmReservation{Reservation: res})
	s.logger.Infow("reservation confirmed", "reservation_id", res.ID, "date", res.Date, "time", res.Time, "guests", res.Guests, "source", sourceRP)
	s.publish(ctx, reservationEvent(queue.EventConfirmed, sourceRP, res))
	return res, nil
}

// Cancel removes the reservation with id from the collection.
func (s *Service) Cancel(ctx context.Context, id string) error {
	res, ok := s.store.Snapshot().FindReservation(id)
	if !ok {
		return ErrReservationNotFound
	}
	s.store.Dispatch(store.CancelReservation{ID: id})
	s.logger.Infow("reservation cancelled", "reservation_id", id)
	s.publish(ctx, reservationEvent(queue.EventCancelled, sourceStaff, res))
	return nil
}

// UpdatePayment merges p into the payment draft. Card number and expiry are
// normalised to their display format first.
func (s *Service) UpdatePayment(p model.PaymentPatch) model.PaymentDraft {
	return s.store.Dispatch(store.UpdatePayment{Patch: formatPaymentPatch(p)}).Payment
}

func formatPaymentPatch(p model.PaymentPatch) model.PaymentPatch {
	if p.CardNumber != nil {
		v := validation.FormatCardNumber(*p.CardNumber)
		p.CardNumber = &v
	}
	if p.ExpiryDate != nil {
		v := validation.FormatExpiry(*p.ExpiryDate)
		p.ExpiryDate = &v
	}
	return p
}
