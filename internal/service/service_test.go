package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/qr"
	"github.com/iliyamo/goldenhour-reservation/internal/queue"
	"github.com/iliyamo/goldenhour-reservation/internal/slots"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
	"github.com/iliyamo/goldenhour-reservation/internal/utils"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, time.October, 15, 18, 0, 0, 0, time.UTC)

type recordingBroker struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
	err    error
}

func (b *recordingBroker) Publish(_ context.Context, _ string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	var ev queue.ReservationEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		return err
	}
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBroker) Subscribe(context.Context, string, queue.MessageHandler) error { return nil }
func (b *recordingBroker) Close() error                                                  { return nil }

func (b *recordingBroker) published() []queue.ReservationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]queue.ReservationEvent(nil), b.events...)
}

type fixture struct {
	svc    *Service
	broker *recordingBroker
	slept  []time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	initial, err := store.SeedState()
	if err != nil {
		t.Fatalf("seed state: %v", err)
	}
	f := &fixture{broker: &recordingBroker{}}
	seq := 0
	st := store.New(initial, store.NewReducer(slots.NewGenerator(slots.NoClosure{})), nil)
	f.svc = New(st, Options{
		Broker: f.broker,
		Now:    func() time.Time { return testNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("new-%d", seq)
		},
		Sleep:        func(d time.Duration) { f.slept = append(f.slept, d) },
		SubmitDelay:  1500 * time.Millisecond,
		PaymentDelay: 3 * time.Second,
		JWTSecret:    testSecret,
	})
	return f
}

func ptr[T any](v T) *T { return &v }

func janeDoe() model.ReservationPatch {
	return model.ReservationPatch{
		Date:   ptr(testNow.Format("2006-01-02")),
		Time:   ptr("19:00"),
		Guests: ptr(2),
		Name:   ptr("Jane Doe"),
		Email:  ptr("jane@example.com"),
		Phone:  ptr("+1 555 123 4567"),
	}
}

func validCard() model.PaymentPatch {
	return model.PaymentPatch{
		CardNumber:     ptr("4242424242424242"),
		ExpiryDate:     ptr("1228"),
		CVV:            ptr("123"),
		CardholderName: ptr("Jane Doe"),
	}
}

func TestSubmitGuest(t *testing.T) {
	f := newFixture(t)
	before := len(f.svc.Reservations())

	res, err := f.svc.SubmitGuest(context.Background(), janeDoe())
	if err != nil {
		t.Fatalf("SubmitGuest: %v", err)
	}
	if res.ID != "new-1" || res.Status != model.StatusConfirmed || res.TableID != nil {
		t.Errorf("reservation = %+v", res)
	}
	if !res.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", res.CreatedAt, testNow)
	}

	st := f.svc.State()
	if got := len(st.Reservations); got != before+1 {
		t.Errorf("collection length = %d, want %d", got, before+1)
	}
	if last := st.Reservations[len(st.Reservations)-1]; last.ID != res.ID {
		t.Errorf("last reservation = %s, want %s", last.ID, res.ID)
	}
	if st.CurrentView != store.ViewConfirmation {
		t.Errorf("view = %s, want confirmation", st.CurrentView)
	}
	if len(f.slept) != 1 || f.slept[0] != 1500*time.Millisecond {
		t.Errorf("slept = %v, want [1.5s]", f.slept)
	}

	events := f.broker.published()
	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != queue.EventConfirmed || ev.ReservationID != res.ID || ev.Source != sourceGuest || ev.Guests != 2 {
		t.Errorf("event = %+v", ev)
	}
	if ev.OccurredAt != "2026-10-15T18:00:00Z" {
		t.Errorf("OccurredAt = %q", ev.OccurredAt)
	}
}

func TestSubmitGuestRejects(t *testing.T) {
	cases := []struct {
		name   string
		patch  func(p *model.ReservationPatch)
		fields []string
		err    error
	}{
		{"missingName", func(p *model.ReservationPatch) { p.Name = ptr(" ") }, []string{"name"}, nil},
		{"badEmail", func(p *model.ReservationPatch) { p.Email = ptr("jane") }, []string{"email"}, nil},
		{"tooManyGuests", func(p *model.ReservationPatch) { p.Guests = ptr(13) }, []string{"guests"}, nil},
		{"pastDate", func(p *model.ReservationPatch) { p.Date = ptr("2026-10-14") }, []string{"date"}, nil},
		{"beyondHorizon", func(p *model.ReservationPatch) { p.Date = ptr("2027-01-16") }, []string{"date"}, nil},
		{"withTable", func(p *model.ReservationPatch) { p.TableID = ptr(1) }, nil, ErrPaymentRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			before := len(f.svc.Reservations())
			p := janeDoe()
			tc.patch(&p)

			_, err := f.svc.SubmitGuest(context.Background(), p)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("err = %v, want %v", err, tc.err)
				}
			} else {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				if len(verr.Fields) != len(tc.fields) {
					t.Errorf("fields = %v, want %v", verr.Fields, tc.fields)
				}
				for _, field := range tc.fields {
					if _, ok := verr.Fields[field]; !ok {
						t.Errorf("field %q not reported: %v", field, verr.Fields)
					}
				}
			}
			if got := len(f.svc.Reservations()); got != before {
				t.Errorf("collection length = %d, want %d", got, before)
			}
			if len(f.slept) != 0 || len(f.broker.published()) != 0 {
				t.Errorf("rejected submission slept %v and published %d", f.slept, len(f.broker.published()))
			}
		})
	}
}

func TestSubmitGuestPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.broker.err = errors.New("broker down")

	if _, err := f.svc.SubmitGuest(context.Background(), janeDoe()); err != nil {
		t.Fatalf("publish failure leaked to caller: %v", err)
	}
	if got := len(f.svc.Reservations()); got != 29 {
		t.Errorf("collection length = %d, want 29", got)
	}
}

func TestPay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Pay(ctx, PaymentRequest{Reservation: janeDoe(), TableID: 1, Payment: validCard()})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if res.TableID == nil || *res.TableID != 1 {
		t.Errorf("TableID = %v, want 1", res.TableID)
	}

	st := f.svc.State()
	if st.Payment.Amount != 150 || st.Payment.TableID != 1 {
		t.Errorf("payment draft = %+v, want table 1 at 150", st.Payment)
	}
	if st.Payment.CardNumber != "4242 4242 4242 4242" || st.Payment.ExpiryDate != "12/28" {
		t.Errorf("payment not formatted: %+v", st.Payment)
	}
	if st.CurrentView != store.ViewConfirmation {
		t.Errorf("view = %s, want confirmation", st.CurrentView)
	}
	if len(f.slept) != 1 || f.slept[0] != 3*time.Second {
		t.Errorf("slept = %v, want [3s]", f.slept)
	}

	// table status is display-only and not changed by a booking
	if table, _ := st.FindTable(1); table.Status != model.TableAvailable {
		t.Errorf("table 1 status = %s", table.Status)
	}

	events := f.broker.published()
	if len(events) != 1 || events[0].Amount != 150 || events[0].Source != sourcePayment {
		t.Errorf("events = %+v", events)
	}
}

func TestPayRejects(t *testing.T) {
	cases := []struct {
		name    string
		tableID int
		guests  int
		payment model.PaymentPatch
		err     error
		fields  []string
	}{
		{"unknownTable", 99, 2, validCard(), ErrTableNotFound, nil},
		{"occupiedTable", 4, 2, validCard(), ErrTableUnavailable, nil},
		{"reservedTable", 5, 2, validCard(), ErrTableUnavailable, nil},
		{"tooSmall", 1, 3, validCard(), ErrTableUnavailable, nil},
		{"shortCard", 1, 2, model.PaymentPatch{CardNumber: ptr("4242"), ExpiryDate: ptr("1228"), CVV: ptr("123"), CardholderName: ptr("J")}, nil, []string{"card_number"}},
		{"emptyPayment", 2, 2, model.PaymentPatch{}, nil, []string{"card_number", "expiry_date", "cvv", "cardholder_name"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			p := janeDoe()
			p.Guests = ptr(tc.guests)

			_, err := f.svc.Pay(context.Background(), PaymentRequest{Reservation: p, TableID: tc.tableID, Payment: tc.payment})
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("err = %v, want %v", err, tc.err)
				}
			} else {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				for _, field := range tc.fields {
					if _, ok := verr.Fields[field]; !ok {
						t.Errorf("field %q not reported: %v", field, verr.Fields)
					}
				}
			}
			if got := len(f.svc.Reservations()); got != 28 {
				t.Errorf("collection length = %d, want 28", got)
			}
			if len(f.slept) != 0 {
				t.Errorf("rejected payment slept %v", f.slept)
			}
		})
	}
}

func TestCreateForClient(t *testing.T) {
	f := newFixture(t)
	d := model.ReservationDraft{}.Merge(janeDoe())
	d.Date = "2027-06-01" // beyond the guest horizon
	d.TableID = ptr(3)

	res, err := f.svc.CreateForClient(context.Background(), d)
	if err != nil {
		t.Fatalf("CreateForClient: %v", err)
	}
	if res.TableID != nil {
		t.Errorf("TableID = %v, want nil", *res.TableID)
	}
	if len(f.slept) != 0 {
		t.Errorf("slept = %v, want none", f.slept)
	}
	if ev := f.broker.published(); len(ev) != 1 || ev[0].Source != sourceRP {
		t.Errorf("events = %+v", ev)
	}

	d.Phone = "123"
	var verr *ValidationError
	if _, err := f.svc.CreateForClient(context.Background(), d); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.Cancel(ctx, "missing"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
	if err := f.svc.Cancel(ctx, "2"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, ok := f.svc.State().FindReservation("2"); ok {
		t.Error("reservation 2 still present")
	}
	if got := len(f.svc.Reservations()); got != 27 {
		t.Errorf("collection length = %d, want 27", got)
	}

	events := f.broker.published()
	if len(events) != 1 || events[0].Type != queue.EventCancelled || events[0].ReservationID != "2" || events[0].Source != sourceStaff {
		t.Errorf("events = %+v", events)
	}
}

func TestSetView(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.SetView(store.ViewReservation); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	if err := f.svc.SetView("kitchen"); !errors.Is(err, ErrInvalidView) {
		t.Errorf("err = %v, want ErrInvalidView", err)
	}
	if v := f.svc.State().CurrentView; v != store.ViewReservation {
		t.Errorf("view = %s, want reservation", v)
	}
}

func TestSelectDateAndSlots(t *testing.T) {
	f := newFixture(t)

	got := f.svc.SelectDate("2025-07-28")
	if len(got) == 0 {
		t.Fatal("no slots generated")
	}
	for _, s := range got {
		if s.Time == "19:00" && s.Available {
			t.Error("19:00 on 2025-07-28 is booked but reported available")
		}
	}
	if f.svc.State().SelectedDate != "2025-07-28" {
		t.Errorf("selected date = %q", f.svc.State().SelectedDate)
	}

	f.svc.Slots("2025-08-01")
	if f.svc.State().SelectedDate != "2025-07-28" {
		t.Error("Slots changed the selected date")
	}
}

func TestSelectableTables(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name   string
		guests int
		want   []int
	}{
		{"couple", 2, []int{1, 2, 3, 6, 7, 8}},
		{"six", 6, []int{3, 6, 8}},
		{"eight", 8, []int{6}},
		{"twelve", 12, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.svc.SelectableTables(tc.guests)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d tables, want %d", len(got), len(tc.want))
			}
			for i, table := range got {
				if table.ID != tc.want[i] {
					t.Errorf("table[%d] = %d, want %d", i, table.ID, tc.want[i])
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Login("chef"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}

	sess, err := f.svc.Login(model.RoleHostess)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.User.ID != "3" || sess.View != store.ViewAdmin {
		t.Errorf("session = %+v", sess)
	}
	claims, err := utils.ParseSessionToken(testSecret, sess.Token.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "3" || claims.Role != model.RoleHostess {
		t.Errorf("claims = %+v", claims)
	}
	if u := f.svc.State().CurrentUser; u == nil || u.ID != "3" {
		t.Errorf("current user = %v", u)
	}

	f.svc.Logout()
	st := f.svc.State()
	if st.CurrentUser != nil || st.CurrentView != store.ViewLanding {
		t.Errorf("after logout user=%v view=%s", st.CurrentUser, st.CurrentView)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Stats("decade"); err == nil {
		t.Fatal("expected error for unknown period")
	}

	before, err := f.svc.Stats("week")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if before.TotalReservations != 0 || before.TodayReservations != 0 {
		t.Errorf("seed data should be outside the window: %+v", before)
	}

	if _, err := f.svc.SubmitGuest(context.Background(), janeDoe()); err != nil {
		t.Fatalf("SubmitGuest: %v", err)
	}
	after, err := f.svc.Stats("")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if after.TotalReservations != 1 || after.TodayReservations != 1 || after.MonthlyRevenue != 170 {
		t.Errorf("stats after booking = %+v", after)
	}
}

func TestQRCode(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.QRCode("missing"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}

	code, err := f.svc.QRCode("1")
	if err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	if !strings.HasPrefix(code.Image, "data:image/png;base64,") {
		t.Errorf("image prefix = %.30q", code.Image)
	}
	if code.Payload.Venue != qr.Venue || code.Payload.Name != "John Smith" {
		t.Errorf("payload = %+v", code.Payload)
	}

	// the rendered content scans back to the same reservation
	if got := f.svc.CheckIn(code.Content); !got.Matched() || got.Reservation.ID != "1" {
		t.Errorf("CheckIn(own code) = %+v", got)
	}
}

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	before := f.svc.Reservations()

	cases := []struct {
		name string
		raw  string
		want qr.Outcome
	}{
		{"known", `{"id":"2","name":"Sarah Johnson"}`, qr.OutcomeMatched},
		{"unknown", `{"id":"nonexistent"}`, qr.OutcomeNotFound},
		{"notJSON", "not json", qr.OutcomeInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.svc.CheckIn(tc.raw); got.Outcome != tc.want {
				t.Errorf("outcome = %s, want %s", got.Outcome, tc.want)
			}
		})
	}

	after := f.svc.Reservations()
	if len(after) != len(before) || &after[0] != &before[0] {
		t.Error("check-in modified the collection")
	}
}

func TestRPSummary(t *testing.T) {
	f := newFixture(t)

	got := f.svc.RPSummary()
	if len(got.Reservations) != 17 {
		t.Fatalf("portfolio size = %d, want 17", len(got.Reservations))
	}
	if got.TotalGuests != 73 {
		t.Errorf("TotalGuests = %d, want 73", got.TotalGuests)
	}
	if math.Abs(got.AveragePartySize-4.3) > 1e-9 {
		t.Errorf("AveragePartySize = %v, want 4.3", got.AveragePartySize)
	}
}

func TestTodayReservations(t *testing.T) {
	f := newFixture(t)
	if got := f.svc.TodayReservations(); len(got) != 0 {
		t.Fatalf("today = %d, want 0", len(got))
	}
	if _, err := f.svc.SubmitGuest(context.Background(), janeDoe()); err != nil {
		t.Fatalf("SubmitGuest: %v", err)
	}
	got := f.svc.TodayReservations()
	if len(got) != 1 || got[0].Name != "Jane Doe" {
		t.Errorf("today = %+v", got)
	}
}

func TestDemoCodes(t *testing.T) {
	f := newFixture(t)

	codes, err := f.svc.DemoCodes()
	if err != nil {
		t.Fatalf("DemoCodes: %v", err)
	}
	if len(codes) != 2 || codes[0].ReservationID != "1" || codes[1].ReservationID != "2" {
		t.Fatalf("codes = %+v", codes)
	}
	for _, c := range codes {
		if strings.Contains(c.Code, "email") || strings.Contains(c.Code, "phone") {
			t.Errorf("demo code carries contact details: %s", c.Code)
		}
		if got := f.svc.CheckIn(c.Code); !got.Matched() {
			t.Errorf("demo code %s does not match: %+v", c.ReservationID, got)
		}
	}
}

func TestSubmitGuestAfterPay(t *testing.T) {
	tests := []struct {
		name    string
		tableID int
		wantErr error
	}{
		{"paid", 1, nil},
		{"unknownTable", 99, ErrTableNotFound},
		{"occupiedTable", 4, ErrTableUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			_, err := f.svc.Pay(ctx, PaymentRequest{Reservation: janeDoe(), TableID: tt.tableID, Payment: validCard()})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pay err = %v, want %v", err, tt.wantErr)
			}
			if d := f.svc.State().Draft; d.TableID != nil {
				t.Errorf("draft kept table %d after Pay", *d.TableID)
			}

			p := janeDoe()
			p.Time = ptr("20:00")
			res, err := f.svc.SubmitGuest(ctx, p)
			if err != nil {
				t.Fatalf("SubmitGuest after Pay: %v", err)
			}
			if res.TableID != nil {
				t.Errorf("plain booking carries table %d", *res.TableID)
			}
		})
	}
}

func TestSubmitGuestIgnoresDraftTable(t *testing.T) {
	f := newFixture(t)
	f.svc.UpdateDraft(model.ReservationPatch{TableID: ptr(2)})

	res, err := f.svc.SubmitGuest(context.Background(), janeDoe())
	if err != nil {
		t.Fatalf("SubmitGuest: %v", err)
	}
	if res.TableID != nil {
		t.Errorf("TableID = %d, want nil", *res.TableID)
	}
}

func TestBookingTimeSlot(t *testing.T) {
	tests := []struct {
		name string
		book func(f *fixture, p model.ReservationPatch) error
	}{
		{"guest", func(f *fixture, p model.ReservationPatch) error {
			_, err := f.svc.SubmitGuest(context.Background(), p)
			return err
		}},
		{"payment", func(f *fixture, p model.ReservationPatch) error {
			_, err := f.svc.Pay(context.Background(), PaymentRequest{Reservation: p, TableID: 2, Payment: validCard()})
			return err
		}},
		{"client", func(f *fixture, p model.ReservationPatch) error {
			_, err := f.svc.CreateForClient(context.Background(), model.ReservationDraft{}.Merge(p))
			return err
		}},
	}
	for _, tt := range tests {
		for _, bad := range []string{"03:17", "garbage", "23:00"} {
			t.Run(tt.name+"/"+bad, func(t *testing.T) {
				f := newFixture(t)
				p := janeDoe()
				p.Time = ptr(bad)

				var verr *ValidationError
				if err := tt.book(f, p); !errors.As(err, &verr) || verr.Fields["time"] == "" {
					t.Fatalf("err = %v, want a time ValidationError", err)
				}
				if got := len(f.svc.Reservations()); got != 28 {
					t.Errorf("collection length = %d, want 28", got)
				}
			})
		}
	}
}

func TestSubmitGuestTakenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SubmitGuest(ctx, janeDoe()); err != nil {
		t.Fatalf("first SubmitGuest: %v", err)
	}

	var verr *ValidationError
	if _, err := f.svc.SubmitGuest(ctx, janeDoe()); !errors.As(err, &verr) || verr.Fields["time"] == "" {
		t.Fatalf("second SubmitGuest err = %v, want a time ValidationError", err)
	}
	if _, err := f.svc.Pay(ctx, PaymentRequest{Reservation: janeDoe(), TableID: 2, Payment: validCard()}); !errors.As(err, &verr) || verr.Fields["time"] == "" {
		t.Fatalf("Pay on taken slot err = %v, want a time ValidationError", err)
	}
	if got := len(f.svc.Reservations()); got != 29 {
		t.Errorf("collection length = %d, want 29", got)
	}

	// staff may double-book a slot
	if _, err := f.svc.CreateForClient(ctx, model.ReservationDraft{}.Merge(janeDoe())); err != nil {
		t.Errorf("CreateForClient on taken slot: %v", err)
	}
}
