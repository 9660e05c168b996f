package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// DashboardHandler serves the headline stats and the activity grid.
type DashboardHandler struct {
	orders ports.OrderService
}

func NewDashboardHandler(orders ports.OrderService) *DashboardHandler {
	return &DashboardHandler{orders: orders}
}

// Stats returns the dashboard figures: distinct customers, order count,
// total revenue, and today's orders.
func (h *DashboardHandler) Stats(c echo.Context) error {
	view, err := h.orders.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		Success:        true,
		TotalCustomers: view.Stats.TotalCustomers,
		TotalOrders:    view.Stats.TotalOrders,
		TotalRevenue:   view.Stats.TotalRevenue,
		TodayOrders:    view.Stats.TodayOrders,
	})
}

// Activity returns the 52x7 grid with per-day counts and display levels,
// oldest week first.
func (h *DashboardHandler) Activity(c echo.Context) error {
	view, err := h.orders.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	resp := activityResponse{Success: true, Weeks: make([][]activityDayResponse, len(view.Activity))}
	for w, week := range view.Activity {
		days := make([]activityDayResponse, len(week))
		for i, day := range week {
			days[i] = activityDayResponse{
				Date:  day.Date.Format("2006-01-02"),
				Count: day.Count,
				Level: domain.ActivityLevel(day.Count),
			}
		}
		resp.Weeks[w] = days
	}
	return c.JSON(http.StatusOK, resp)
}

// Heatmap renders the activity grid as a self-contained HTML chart.
func (h *DashboardHandler) Heatmap(c echo.Context) error {
	view, err := h.orders.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return renderActivityHeatmap(c.Response(), view.Activity)
}
