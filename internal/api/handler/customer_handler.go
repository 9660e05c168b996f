package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storeflow/order-console/internal/core/ports"
)

// CustomerHandler serves the grouped-by-customer view, recomputed from a
// fresh fetch on every request.
type CustomerHandler struct {
	orders ports.OrderService
}

func NewCustomerHandler(orders ports.OrderService) *CustomerHandler {
	return &CustomerHandler{orders: orders}
}

// List returns the customer aggregates, narrowed by the optional q query
// parameter (case-insensitive substring over name, phone, and address).
func (h *CustomerHandler) List(c echo.Context) error {
	groups, err := h.orders.Customers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	resp := listCustomersResponse{Success: true, Data: make([]customerResponse, len(groups))}
	for i, g := range groups {
		resp.Data[i] = toCustomerResponse(g)
	}
	return c.JSON(http.StatusOK, resp)
}
