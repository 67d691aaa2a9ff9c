package store

import "github.com/iliyamo/goldenhour-reservation/internal/model"

// SlotGenerator derives the time slots for a date.
type SlotGenerator interface {
	Generate(date string, reservations []model.Reservation) []model.TimeSlot
}

// Reducer applies actions to a State.
type Reducer struct {
	slots SlotGenerator
}

// NewReducer returns a Reducer that builds time slots with slots.
func NewReducer(slots SlotGenerator) *Reducer {
	return &Reducer{slots: slots}
}

// Reduce returns the state that results from applying a to s. The input is
// never modified; unchanged branches are shared with the result. The second
// return value is false when the action is not recognised, in which case the
// input is returned unchanged.
func (r *Reducer) Reduce(s *State, a Action) (*State, bool) {
	next := *s

	switch act := a.(type) {
	case SetView:
		next.CurrentView = act.View

	case UpdateDraft:
		next.Draft = s.Draft.Merge(act.Patch)

	case ConfirmReservation:
		reservations := make([]model.Reservation, 0, len(s.Reservations)+1)
		reservations = append(reservations, s.Reservations...)
		next.Reservations = append(reservations, act.Reservation)
		next.CurrentView = ViewConfirmation

	case SetSelectedDate:
		next.SelectedDate = act.Date
		next.TimeSlots = r.generate(act.Date, s.Reservations)

	case GenerateTimeSlots:
		next.TimeSlots = r.generate(act.Date, s.Reservations)

	case CancelReservation:
		kept := make([]model.Reservation, 0, len(s.Reservations))
		for _, res := range s.Reservations {
			if res.ID != act.ID {
				kept = append(kept, res)
			}
		}
		if len(kept) == len(s.Reservations) {
			return s, true
		}
		next.Reservations = kept

	case UpdatePayment:
		next.Payment = s.Payment.Merge(act.Patch)

	case ProcessPayment:
		next.CurrentView = ViewConfirmation

	case Login:
		if !s.hasUser(act.User.ID) {
			return s, true
		}
		user := act.User
		next.CurrentUser = &user
		next.CurrentView = ViewAdmin

	case Logout:
		next.CurrentUser = nil
		next.CurrentView = ViewLanding

	default:
		return s, false
	}

	return &next, true
}

func (r *Reducer) generate(date string, reservations []model.Reservation) []model.TimeSlot {
	if r.slots == nil {
		return nil
	}
	return r.slots.Generate(date, reservations)
}
