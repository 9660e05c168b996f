package domain

import "time"

// LineItem is a named product with quantity and unit price within an order.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Subtotal is price times quantity. It is always computed, never stored.
func (li LineItem) Subtotal() float64 {
	if li.Quantity <= 0 || li.Price <= 0 {
		return 0
	}
	return li.Price * float64(li.Quantity)
}

// Order is a customer purchase record with one or more line items.
// Legacy records that carried a single flat product string are normalized
// into Products at the API boundary; nothing past that boundary ever sees
// the old shape.
type Order struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone"`
	CustomerAddress string     `json:"customerAddress"`
	Products        []LineItem `json:"products"`
	OrderTime       time.Time  `json:"orderTime"`
}

// Total sums the subtotals of all line items. Missing quantity or price
// contributes zero rather than failing.
func (o Order) Total() float64 {
	var total float64
	for _, li := range o.Products {
		total += li.Subtotal()
	}
	return total
}

// User models the authenticated shop owner returned by the backend.
type User struct {
	ID        string `json:"id"`
	ShopName  string `json:"shopName,omitempty"`
	OwnerName string `json:"ownerName,omitempty"`
	Email     string `json:"email,omitempty"`
}
