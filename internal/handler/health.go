package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health handles GET /healthz. It returns a plain "ok" for load balancers
// and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
