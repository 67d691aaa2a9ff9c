package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/queue"
)

const publishTimeout = 5 * time.Second

// Event sources.
const (
	sourceGuest   = "guest"
	sourcePayment = "payment"
	sourceRP      = "rp"
	sourceStaff   = "staff"
)

func reservationEvent(typ, source string, r model.Reservation) queue.ReservationEvent {
	return queue.ReservationEvent{
		Type:          typ,
		ReservationID: r.ID,
		Name:          r.Name,
		Date:          r.Date,
		Time:          r.Time,
		Guests:        r.Guests,
		TableID:       r.TableID,
		Source:        source,
	}
}

// publish sends ev to the events queue. Failures are logged and never
// reach the caller; the state change has already happened. The request
// context is detached so a client hang-up does not drop the event.
func (s *Service) publish(ctx context.Context, ev queue.ReservationEvent) {
	ev.Stamp(s.now())
	body, err := json.Marshal(ev)
	if err != nil {
		s.logger.Errorw("marshal reservation event failed", "type", ev.Type, "reservation_id", ev.ReservationID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.broker.Publish(ctx, s.eventsQueue, body); err != nil {
		s.logger.Warnw("publish reservation event failed", "type", ev.Type, "reservation_id", ev.ReservationID, "queue", s.eventsQueue, "error", err)
		return
	}
	s.logger.Debugw("reservation event published", "type", ev.Type, "reservation_id", ev.ReservationID)
}
