package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/service"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
)

// StateHandler exposes the client-facing application state: the current
// view, the drafts, the date selection and the static catalogs.
type StateHandler struct {
	Service *service.Service
}

func NewStateHandler(svc *service.Service) *StateHandler {
	if svc == nil {
		panic("nil service passed to NewStateHandler")
	}
	return &StateHandler{Service: svc}
}

type stateResponse struct {
	CurrentView  store.View             `json:"current_view"`
	Draft        model.ReservationDraft `json:"draft"`
	SelectedDate string                 `json:"selected_date"`
	TimeSlots    []model.TimeSlot       `json:"time_slots"`
	Payment      model.PaymentDraft     `json:"payment"`
	CurrentUser  *model.User            `json:"current_user"`
	Reservations int                    `json:"reservation_count"`
}

// GetState handles GET /api/state. The collections are served by their own
// routes; only the reservation count is included here.
func (h *StateHandler) GetState(c echo.Context) error {
	st := h.Service.State()
	slots := st.TimeSlots
	if slots == nil {
		slots = []model.TimeSlot{}
	}
	return c.JSON(http.StatusOK, stateResponse{
		CurrentView:  st.CurrentView,
		Draft:        st.Draft,
		SelectedDate: st.SelectedDate,
		TimeSlots:    slots,
		Payment:      st.Payment,
		CurrentUser:  st.CurrentUser,
		Reservations: len(st.Reservations),
	})
}

// SetView handles PUT /api/view with body {"view": "..."}.
func (h *StateHandler) SetView(c echo.Context) error {
	var body struct {
		View store.View `json:"view"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Service.SetView(body.View); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"view": body.View})
}

// UpdateDraft handles PATCH /api/draft. Absent fields keep their value.
func (h *StateHandler) UpdateDraft(c echo.Context) error {
	var patch model.ReservationPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	return c.JSON(http.StatusOK, h.Service.UpdateDraft(patch))
}

// UpdatePayment handles PATCH /api/payment. The stored card number and
// expiry come back in display format.
func (h *StateHandler) UpdatePayment(c echo.Context) error {
	var patch model.PaymentPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	return c.JSON(http.StatusOK, h.Service.UpdatePayment(patch))
}

// ListTables handles GET /api/tables.
func (h *StateHandler) ListTables(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.Tables())
}

// SelectableTables handles GET /api/tables/selectable?guests=N.
func (h *StateHandler) SelectableTables(c echo.Context) error {
	guests, err := strconv.Atoi(c.QueryParam("guests"))
	if err != nil || guests < 1 {
		return badRequest(c, "guests must be a positive integer")
	}
	return c.JSON(http.StatusOK, h.Service.SelectableTables(guests))
}

// ListUsers handles GET /api/users.
func (h *StateHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.Users())
}

// SelectDate handles PUT /api/slots with body {"date": "YYYY-MM-DD"}.
func (h *StateHandler) SelectDate(c echo.Context) error {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !validDate(body.Date) {
		return badRequest(c, "date must be in YYYY-MM-DD format")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":       body.Date,
		"time_slots": h.Service.SelectDate(body.Date),
	})
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD. Slots are regenerated on
// every call.
func (h *StateHandler) GetSlots(c echo.Context) error {
	date := c.QueryParam("date")
	if !validDate(date) {
		return badRequest(c, "date must be in YYYY-MM-DD format")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":       date,
		"time_slots": h.Service.Slots(date),
	})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
