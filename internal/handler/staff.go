package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/service"
)

// StaffHandler serves the staff session and the admin, relationship
// manager and hostess tools. Staff routes are not gated: logging in only
// selects a roster user.
type StaffHandler struct {
	Service *service.Service
}

func NewStaffHandler(svc *service.Service) *StaffHandler {
	if svc == nil {
		panic("nil service passed to NewStaffHandler")
	}
	return &StaffHandler{Service: svc}
}

// Login handles POST /api/session with body {"role": "admin|rp|hostess"}.
func (h *StaffHandler) Login(c echo.Context) error {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	sess, err := h.Service.Login(body.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Logout handles DELETE /api/session.
func (h *StaffHandler) Logout(c echo.Context) error {
	h.Service.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/admin/stats?period=week|month|year.
func (h *StaffHandler) Stats(c echo.Context) error {
	out, err := h.Service.Stats(c.QueryParam("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateForClient handles POST /api/rp/reservations. The body is a complete
// reservation; the guest booking window does not apply.
func (h *StaffHandler) CreateForClient(c echo.Context) error {
	var draft model.ReservationDraft
	if err := c.Bind(&draft); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Service.CreateForClient(c.Request().Context(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// RPSummary handles GET /api/rp/summary.
func (h *StaffHandler) RPSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.RPSummary())
}

// Today handles GET /api/hostess/today.
func (h *StaffHandler) Today(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.TodayReservations())
}

// DemoCodes handles GET /api/hostess/demo-codes.
func (h *StaffHandler) DemoCodes(c echo.Context) error {
	codes, err := h.Service.DemoCodes()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, codes)
}

// CheckIn handles POST /api/hostess/check-in with body {"code": "..."}.
// Every outcome is a 200; the result says whether the code matched.
func (h *StaffHandler) CheckIn(c echo.Context) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	return c.JSON(http.StatusOK, h.Service.CheckIn(body.Code))
}
