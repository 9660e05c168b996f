// Package api serves the local dashboard: read-only aggregated views over
// the remote order API plus a thin CRUD proxy, bound to the console's own
// session. It keeps no state; every request re-fetches and re-derives.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/api/handler"
	"github.com/storeflow/order-console/internal/core/ports"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(sessions ports.SessionService, orders ports.OrderService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storeflow_console"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Handlers ---
	dashboardHandler := handler.NewDashboardHandler(orders)
	customerHandler := handler.NewCustomerHandler(orders)
	orderHandler := handler.NewOrderHandler(orders)
	sessionHandler := handler.NewSessionHandler(sessions)
	healthHandler := handler.NewHealthHandler()

	// --- Routes ---
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/session", sessionHandler.Current)

	e.GET("/dashboard", dashboardHandler.Stats)
	e.GET("/dashboard/activity", dashboardHandler.Activity)
	e.GET("/dashboard/heatmap", dashboardHandler.Heatmap)

	e.GET("/customers", customerHandler.List)

	e.GET("/orders", orderHandler.List)
	e.POST("/orders", orderHandler.Create)
	e.PUT("/orders/:id", orderHandler.Update)
	e.DELETE("/orders/:id", orderHandler.Delete)

	return e
}
