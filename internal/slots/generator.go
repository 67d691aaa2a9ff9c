// Package slots derives the bookable time slots for a date from the current
// reservation collection.
package slots

import (
	"math/rand"
	"slices"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
)

// Times lists the slot labels in display order. Generated slots always follow
// this order.
var Times = []string{
	"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
	"20:00", "20:30", "21:00", "21:30", "22:00", "22:30",
}

// IsSlot reports whether t is one of Times.
func IsSlot(t string) bool {
	return slices.Contains(Times, t)
}

// Taken reports whether a reservation already holds date at time t.
func Taken(date, t string, reservations []model.Reservation) bool {
	for _, r := range reservations {
		if r.Date == date && r.Time == t {
			return true
		}
	}
	return false
}

// ClosurePolicy decides whether an otherwise free slot is closed anyway.
type ClosurePolicy interface {
	Closed(date, time string) bool
}

// NoClosure never closes a slot, which makes Generate a pure function of its
// inputs.
type NoClosure struct{}

func (NoClosure) Closed(string, string) bool { return false }

// RandomClosure closes each slot independently with probability Rate. The
// draw happens on every call, so repeated generations for the same date can
// differ.
type RandomClosure struct {
	Rate  float64
	Float func() float64 // defaults to math/rand Float64
}

func (r RandomClosure) Closed(string, string) bool {
	if r.Rate <= 0 {
		return false
	}
	f := r.Float
	if f == nil {
		f = rand.Float64
	}
	return f() < r.Rate
}

// Generator builds time slots using a closure policy.
type Generator struct {
	closure ClosurePolicy
}

// NewGenerator returns a Generator. A nil policy behaves like NoClosure.
func NewGenerator(closure ClosurePolicy) *Generator {
	if closure == nil {
		closure = NoClosure{}
	}
	return &Generator{closure: closure}
}

// Generate returns one slot per entry of Times. A slot is unavailable when a
// reservation already holds the same date and time, or when the closure
// policy closes it.
func (g *Generator) Generate(date string, reservations []model.Reservation) []model.TimeSlot {
	booked := make(map[string]bool)
	for _, r := range reservations {
		if r.Date == date {
			booked[r.Time] = true
		}
	}

	out := make([]model.TimeSlot, 0, len(Times))
	for _, t := range Times {
		// the closure draw happens for every slot, booked or not
		closed := g.closure.Closed(date, t)
		out = append(out, model.TimeSlot{
			Time:      t,
			Available: !booked[t] && !closed,
		})
	}
	return out
}
