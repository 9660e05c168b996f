package handler

import (
	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// --- Request → Service input ---

func toOrderInput(req orderRequest) ports.OrderInput {
	input := ports.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Products:        make([]domain.LineItem, len(req.Products)),
	}
	for i, p := range req.Products {
		input.Products[i] = domain.LineItem{Name: p.Name, Quantity: p.Quantity, Price: p.Price}
	}
	return input
}

// --- Domain → Response ---

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Products:        make([]lineItemResponse, len(o.Products)),
		Total:           o.Total(),
		OrderTime:       o.OrderTime,
	}
	for i, li := range o.Products {
		resp.Products[i] = lineItemResponse{
			Name:     li.Name,
			Quantity: li.Quantity,
			Price:    li.Price,
			Subtotal: li.Subtotal(),
		}
	}
	return resp
}

func toCustomerResponse(g domain.CustomerGroup) customerResponse {
	resp := customerResponse{
		CustomerName:    g.CustomerName,
		CustomerPhone:   g.CustomerPhone,
		CustomerAddress: g.CustomerAddress,
		OrderCount:      g.OrderCount(),
		TotalSpend:      g.TotalSpend(),
		Orders:          make([]orderResponse, len(g.Orders)),
	}
	for i, o := range g.Orders {
		resp.Orders[i] = toOrderResponse(o)
	}
	return resp
}
