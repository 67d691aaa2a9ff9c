// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/goldenhour-reservation/internal/handler"
	"github.com/iliyamo/goldenhour-reservation/internal/middleware"
)

// Handlers bundles the route handlers.
type Handlers struct {
	State        *handler.StateHandler
	Reservations *handler.ReservationHandler
	Staff        *handler.StaffHandler
}

// Middleware carries the optional middleware built by main. Nil entries are
// skipped.
type Middleware struct {
	Logger    *zap.SugaredLogger
	JWTSecret string
	RateLimit echo.MiddlewareFunc
	// Cache only wraps the table and roster catalogs.
	Cache echo.MiddlewareFunc
}

// RegisterRoutes registers routes that do not go through the API middleware.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI installs the global middleware and mounts every /api route.
func RegisterAPI(e *echo.Echo, h Handlers, mw Middleware) {
	e.Use(echomw.Recover())
	if mw.Logger != nil {
		e.Use(middleware.RequestLogger(mw.Logger))
	}

	api := e.Group("/api", middleware.Session(mw.JWTSecret))
	if mw.RateLimit != nil {
		api.Use(mw.RateLimit)
	}

	registerState(api, h.State, mw.Cache)
	registerReservations(api, h.Reservations)
	registerStaff(api, h.Staff)
}

func registerState(g *echo.Group, h *handler.StateHandler, cache echo.MiddlewareFunc) {
	g.GET("/state", h.GetState)
	g.PUT("/view", h.SetView)
	g.PATCH("/draft", h.UpdateDraft)
	g.PATCH("/payment", h.UpdatePayment)
	g.PUT("/slots", h.SelectDate)
	g.GET("/slots", h.GetSlots)

	// tables and users never change after startup
	var catalog []echo.MiddlewareFunc
	if cache != nil {
		catalog = append(catalog, cache)
	}
	g.GET("/tables", h.ListTables, catalog...)
	g.GET("/tables/selectable", h.SelectableTables, catalog...)
	g.GET("/users", h.ListUsers, catalog...)
}

func registerReservations(g *echo.Group, h *handler.ReservationHandler) {
	g.GET("/reservations", h.List)
	g.POST("/reservations", h.Create)
	g.POST("/reservations/payment", h.Pay)
	g.DELETE("/reservations/:id", h.Cancel)
	g.GET("/reservations/:id/qr", h.QRCode)
}

// registerStaff mounts the session and the per-role tools. The role groups
// only namespace the routes.
func registerStaff(g *echo.Group, h *handler.StaffHandler) {
	g.POST("/session", h.Login)
	g.DELETE("/session", h.Logout)

	admin := g.Group("/admin")
	admin.GET("/stats", h.Stats)

	rp := g.Group("/rp")
	rp.POST("/reservations", h.CreateForClient)
	rp.GET("/summary", h.RPSummary)

	hostess := g.Group("/hostess")
	hostess.GET("/today", h.Today)
	hostess.GET("/demo-codes", h.DemoCodes)
	hostess.POST("/check-in", h.CheckIn)
}
