package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storeflow/order-console/internal/core/ports"
)

// OrderHandler proxies order CRUD through the console's session. Each
// mutation re-synchronizes by design: the next read re-fetches the full
// list from the backend.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns the full normalized order list.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listOrdersResponse{Success: true, Data: make([]orderResponse, len(orders))}
	for i, o := range orders {
		resp.Data[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, resp)
}

// Create submits a new order after validating the payload locally.
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.orders.Create(c.Request().Context(), toOrderInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createOrderResponse{Success: true, Data: toOrderResponse(*created)})
}

// Update replaces an order's fields.
func (h *OrderHandler) Update(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.orders.Update(c.Request().Context(), c.Param("id"), toOrderInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}

// Delete removes an order.
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}
