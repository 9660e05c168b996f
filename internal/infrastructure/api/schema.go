package api

import (
	"time"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// envelope is the response wrapper every backend endpoint shares. A missing
// or false success flag means failure regardless of the HTTP status.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e envelope) ok() bool     { return e.Success }
func (e envelope) note() string { return e.Message }

// enveloped lets the transport helper inspect the decoded success flag.
type enveloped interface {
	ok() bool
	note() string
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	ShopName  string `json:"shopName"`
	OwnerName string `json:"ownerName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type lineItemRecord struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderRequest struct {
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone"`
	CustomerAddress string           `json:"customerAddress"`
	Products        []lineItemRecord `json:"products"`
}

func toOrderRequest(input ports.OrderInput) orderRequest {
	req := orderRequest{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Products:        make([]lineItemRecord, len(input.Products)),
	}
	for i, li := range input.Products {
		req.Products[i] = lineItemRecord{Name: li.Name, Quantity: li.Quantity, Price: li.Price}
	}
	return req
}

// --- Response types ---

type userRecord struct {
	ID        string `json:"id,omitempty"`
	MongoID   string `json:"_id,omitempty"`
	ShopName  string `json:"shopName,omitempty"`
	OwnerName string `json:"ownerName,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (r *userRecord) toDomain() *domain.User {
	if r == nil {
		return nil
	}
	id := r.ID
	if id == "" {
		id = r.MongoID
	}
	return &domain.User{ID: id, ShopName: r.ShopName, OwnerName: r.OwnerName, Email: r.Email}
}

// orderRecord tolerates both wire shapes: the current products array and the
// legacy flat product string (with optional flat quantity/price) from before
// the schema migration. toDomain normalizes either into the canonical
// line-item list so nothing downstream branches on schema version.
type orderRecord struct {
	ID              string           `json:"id,omitempty"`
	MongoID         string           `json:"_id,omitempty"`
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone"`
	CustomerAddress string           `json:"customerAddress"`
	Products        []lineItemRecord `json:"products,omitempty"`
	Product         string           `json:"product,omitempty"`
	Quantity        int              `json:"quantity,omitempty"`
	Price           float64          `json:"price,omitempty"`
	OrderTime       time.Time        `json:"orderTime"`
}

func (r orderRecord) toDomain() domain.Order {
	id := r.ID
	if id == "" {
		id = r.MongoID
	}

	var items []domain.LineItem
	switch {
	case len(r.Products) > 0:
		items = make([]domain.LineItem, len(r.Products))
		for i, p := range r.Products {
			items[i] = domain.LineItem{Name: p.Name, Quantity: p.Quantity, Price: p.Price}
		}
	case r.Product != "":
		// Legacy record: one implicit line item. Absent quantity/price stay
		// zero; totals already treat zero as "missing".
		items = []domain.LineItem{{Name: r.Product, Quantity: r.Quantity, Price: r.Price}}
	}

	return domain.Order{
		ID:              id,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Products:        items,
		OrderTime:       r.OrderTime,
	}
}

type authResponse struct {
	envelope
	Token string      `json:"token"`
	User  *userRecord `json:"user"`
}

type meResponse struct {
	envelope
	User *userRecord `json:"user"`
}

type listOrdersResponse struct {
	envelope
	Data []orderRecord `json:"data"`
}

type orderResponse struct {
	envelope
	Data orderRecord `json:"data"`
}
