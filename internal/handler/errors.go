package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goldenhour-reservation/internal/service"
	"github.com/iliyamo/goldenhour-reservation/internal/stats"
)

// writeError maps service errors onto HTTP responses. Anything unknown is
// a 500 and is returned to echo as well so the request logger records it.
func writeError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, service.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, service.ErrTableNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
	case errors.Is(err, service.ErrTableUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "table unavailable for this party"})
	case errors.Is(err, service.ErrPaymentRequired):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "table reservations require payment"})
	case errors.Is(err, service.ErrUnknownRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	case errors.Is(err, service.ErrInvalidView):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid view"})
	case errors.Is(err, stats.ErrInvalidPeriod):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be week, month or year"})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
