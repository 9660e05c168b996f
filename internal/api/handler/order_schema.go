package handler

import "time"

// --- Request types ---

type lineItemRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Quantity int     `json:"quantity" validate:"min=1"`
	Price    float64 `json:"price"    validate:"gte=0"`
}

type orderRequest struct {
	CustomerName    string            `json:"customerName"    validate:"required"`
	CustomerPhone   string            `json:"customerPhone"   validate:"required"`
	CustomerAddress string            `json:"customerAddress" validate:"required"`
	Products        []lineItemRequest `json:"products"        validate:"required,min=1,dive"`
}

// --- Response types ---
// Response shapes are owned by the transport layer and deliberately mirror
// the remote backend's envelope, so a front-end can point at either.

type lineItemResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type orderResponse struct {
	ID              string             `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Products        []lineItemResponse `json:"products"`
	Total           float64            `json:"total"`
	OrderTime       time.Time          `json:"orderTime"`
}

type listOrdersResponse struct {
	Success bool            `json:"success"`
	Data    []orderResponse `json:"data"`
}

type createOrderResponse struct {
	Success bool          `json:"success"`
	Data    orderResponse `json:"data"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

type customerResponse struct {
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerAddress string          `json:"customerAddress"`
	OrderCount      int             `json:"orderCount"`
	TotalSpend      float64         `json:"totalSpend"`
	Orders          []orderResponse `json:"orders"`
}

type listCustomersResponse struct {
	Success bool               `json:"success"`
	Data    []customerResponse `json:"data"`
}

type statsResponse struct {
	Success        bool    `json:"success"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TodayOrders    int     `json:"todayOrders"`
}

type activityDayResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

type activityResponse struct {
	Success bool                    `json:"success"`
	Weeks   [][]activityDayResponse `json:"weeks"`
}
