package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
	"github.com/iliyamo/goldenhour-reservation/internal/service"
)

// ReservationHandler serves the guest booking flows and the reservation
// collection.
type ReservationHandler struct {
	Service *service.Service
}

func NewReservationHandler(svc *service.Service) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

// List handles GET /api/reservations and returns the collection in
// insertion order.
func (h *ReservationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Service.Reservations())
}

// Create handles POST /api/reservations. The body is merged into the draft
// before validation, so a client may submit an empty object after filling
// the draft through PATCH /api/draft. Drafts carrying a table are refused
// with 402; those go through POST /api/reservations/payment.
func (h *ReservationHandler) Create(c echo.Context) error {
	var patch model.ReservationPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Service.SubmitGuest(c.Request().Context(), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Pay handles POST /api/reservations/payment. The request names a table and
// carries the simulated card details; the amount is always the table price.
func (h *ReservationHandler) Pay(c echo.Context) error {
	var req service.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.TableID <= 0 {
		return badRequest(c, "table_id is required")
	}
	res, err := h.Service.Pay(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Cancel handles DELETE /api/reservations/:id.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	if err := h.Service.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// QRCode handles GET /api/reservations/:id/qr. The response carries the
// payload, its encoded text and a PNG data URL.
func (h *ReservationHandler) QRCode(c echo.Context) error {
	code, err := h.Service.QRCode(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, code)
}
