// Package service implements the reservation flows on top of the state
// store: guest bookings, paid table bookings, staff tools and check-in.
package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/qr"
	"github.com/iliyamo/goldenhour-reservation/internal/queue"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
)

// Options wires the collaborators of a Service. Zero values fall back to
// production defaults: wall clock, UUIDv7 ids, time.Sleep, no events, the
// PNG QR encoder and a no-op logger.
type Options struct {
	Broker       queue.Broker
	EventsQueue  string
	QREncoder    qr.Encoder
	QROptions    *qr.Options
	Now          func() time.Time
	NewID        func() string
	Sleep        func(time.Duration)
	SubmitDelay  time.Duration
	PaymentDelay time.Duration
	JWTSecret    string
	SessionTTL   time.Duration
	Logger       *zap.SugaredLogger
}

// Service is safe for concurrent use. All state changes go through the
// store's Dispatch.
type Service struct {
	store        *store.Store
	broker       queue.Broker
	eventsQueue  string
	qr           qr.Encoder
	qrOpts       qr.Options
	now          func() time.Time
	newID        func() string
	sleep        func(time.Duration)
	submitDelay  time.Duration
	paymentDelay time.Duration
	jwtSecret    string
	sessionTTL   time.Duration
	logger       *zap.SugaredLogger
}

func New(st *store.Store, opts Options) *Service {
	if st == nil {
		panic("nil store passed to service.New")
	}
	s := &Service{
		store:        st,
		broker:       opts.Broker,
		eventsQueue:  opts.EventsQueue,
		qr:           opts.QREncoder,
		qrOpts:       qr.DefaultOptions(),
		now:          opts.Now,
		newID:        opts.NewID,
		sleep:        opts.Sleep,
		submitDelay:  opts.SubmitDelay,
		paymentDelay: opts.PaymentDelay,
		jwtSecret:    opts.JWTSecret,
		sessionTTL:   opts.SessionTTL,
		logger:       opts.Logger,
	}
	if opts.QROptions != nil {
		s.qrOpts = *opts.QROptions
	}
	if s.broker == nil {
		s.broker = queue.NopBroker{}
	}
	if s.eventsQueue == "" {
		s.eventsQueue = queue.QueueReservationEvents
	}
	if s.qr == nil {
		s.qr = qr.NewPNGEncoder()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = newReservationID
	}
	if s.sleep == nil {
		s.sleep = time.Sleep
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 8 * time.Hour
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	return s
}

// newReservationID returns a time-ordered UUIDv7 so ids sort by creation.
func newReservationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// State returns the current snapshot. Callers must not modify it.
func (s *Service) State() *store.State {
	return s.store.Snapshot()
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// SetView switches the client view.
func (s *Service) SetView(v store.View) error {
	if !store.ValidView(v) {
		return ErrInvalidView
	}
	s.store.Dispatch(store.SetView{View: v})
	return nil
}

// UpdateDraft merges p into the reservation draft and returns the result.
func (s *Service) UpdateDraft(p model.ReservationPatch) model.ReservationDraft {
	return s.store.Dispatch(store.UpdateDraft{Patch: p}).Draft
}

// SelectDate stores date as the selected date and returns its slots.
func (s *Service) SelectDate(date string) []model.TimeSlot {
	return s.store.Dispatch(store.SetSelectedDate{Date: date}).TimeSlots
}

// Slots regenerates the slots for date without changing the selected date.
func (s *Service) Slots(date string) []model.TimeSlot {
	return s.store.Dispatch(store.GenerateTimeSlots{Date: date}).TimeSlots
}

func (s *Service) Reservations() []model.Reservation {
	return s.store.Snapshot().Reservations
}

func (s *Service) Tables() []model.Table {
	return s.store.Snapshot().Tables
}

// SelectableTables returns the tables a party of guests may pick.
func (s *Service) SelectableTables(guests int) []model.Table {
	out := []model.Table{}
	for _, t := range s.store.Snapshot().Tables {
		if t.Selectable(guests) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) Users() []model.User {
	return s.store.Snapshot().Users
}
