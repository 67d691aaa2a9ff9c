package service

import (
	"fmt"
	"math"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/qr"
	"github.com/iliyamo/goldenhour-reservation/internal/stats"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
	"github.com/iliyamo/goldenhour-reservation/internal/utils"
)

// rpShare is the fraction of the collection attributed to the logged-in
// relationship manager.
const rpShare = 0.6

// demoCodeCount is how many reservations get a ready-made check-in code.
const demoCodeCount = 2

// Session is returned by Login.
type Session struct {
	User  model.User         `json:"user"`
	Token utils.SessionToken `json:"session"`
	View  store.View         `json:"view"`
}

// Login points the session at the first roster user holding role. No secret
// is checked; the returned token only names the selected user.
func (s *Service) Login(role string) (Session, error) {
	if !model.ValidRole(role) {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	user, ok := s.store.Snapshot().FindUserByRole(role)
	if !ok {
		return Session{}, fmt.Errorf("%w: no %s on the roster", ErrUnknownRole, role)
	}

	next := s.store.Dispatch(store.Login{User: user})
	tok, err := utils.NewSessionToken(s.jwtSecret, user.ID, user.Role, user.Name, s.sessionTTL, s.now())
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	s.logger.Infow("staff login", "user_id", user.ID, "role", user.Role)
	return Session{User: user, Token: tok, View: next.CurrentView}, nil
}

func (s *Service) Logout() {
	prev := s.store.Snapshot().CurrentUser
	s.store.Dispatch(store.Logout{})
	if prev != nil {
		s.logger.Infow("staff logout", "user_id", prev.ID, "role", prev.Role)
	}
}

// Stats computes the dashboard statistics for period over the current
// collection.
func (s *Service) Stats(period string) (model.ReservationStats, error) {
	p, err := stats.ParsePeriod(period)
	if err != nil {
		return model.ReservationStats{}, err
	}
	return stats.Compute(s.store.Snapshot().Reservations, p, s.now()), nil
}

// QRCode is a reservation's check-in code in both raw and rendered form.
type QRCode struct {
	Payload qr.Payload `json:"payload"`
	Content string     `json:"content"`
	Image   string     `json:"image"`
}

// QRCode builds the check-in code for reservation id.
func (s *Service) QRCode(id string) (QRCode, error) {
	res, ok := s.store.Snapshot().FindReservation(id)
	if !ok {
		return QRCode{}, ErrReservationNotFound
	}
	p := qr.BuildPayload(res)
	content, err := p.Encode()
	if err != nil {
		return QRCode{}, fmt.Errorf("encode payload: %w", err)
	}
	img, err := s.qr.Encode(p, s.qrOpts)
	if err != nil {
		return QRCode{}, fmt.Errorf("render qr code: %w", err)
	}
	return QRCode{Payload: p, Content: content, Image: img}, nil
}

// CheckIn resolves a scanned code against the current collection. It is
// display-only: nothing is modified.
func (s *Service) CheckIn(raw string) qr.MatchResult {
	result := qr.Match(raw, s.store.Snapshot().Reservations)
	if result.Matched() {
		s.logger.Infow("check-in matched", "reservation_id", result.Reservation.ID)
	} else {
		s.logger.Infow("check-in rejected", "outcome", result.Outcome)
	}
	return result
}

// RPSummary is the relationship manager's portfolio.
type RPSummary struct {
	Reservations     []model.Reservation `json:"reservations"`
	TotalGuests      int                 `json:"total_guests"`
	AveragePartySize float64             `json:"average_party_size"`
}

// RPSummary attributes the first 60% of the collection, rounded up, to the
// relationship manager.
func (s *Service) RPSummary() RPSummary {
	all := s.store.Snapshot().Reservations
	n := int(math.Ceil(float64(len(all)) * rpShare))
	out := RPSummary{Reservations: append([]model.Reservation{}, all[:n]...)}
	for _, r := range out.Reservations {
		out.TotalGuests += r.Guests
	}
	if n > 0 {
		out.AveragePartySize = math.Round(float64(out.TotalGuests)/float64(n)*10) / 10
	}
	return out
}

// TodayReservations returns the reservations dated today in collection
// order.
func (s *Service) TodayReservations() []model.Reservation {
	today := s.today()
	out := []model.Reservation{}
	for _, r := range s.store.Snapshot().Reservations {
		if r.Date == today {
			out = append(out, r)
		}
	}
	return out
}

// DemoCode is a ready-to-scan code shown on the hostess screen.
type DemoCode struct {
	ReservationID string `json:"reservation_id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Code          string `json:"code"`
}

// DemoCodes returns reduced check-in codes for the first reservations of
// the collection.
func (s *Service) DemoCodes() ([]DemoCode, error) {
	all := s.store.Snapshot().Reservations
	out := make([]DemoCode, 0, demoCodeCount)
	for _, r := range all[:min(demoCodeCount, len(all))] {
		code, err := qr.DemoPayload(r).Encode()
		if err != nil {
			return nil, fmt.Errorf("encode demo payload: %w", err)
		}
		out = append(out, DemoCode{ReservationID: r.ID, Name: r.Name, Date: r.Date, Time: r.Time, Code: code})
	}
	return out, nil
}
