package ports

import (
	"context"

	"github.com/storeflow/order-console/internal/core/domain"
)

// RegisterInput carries the fields required to create a shop account.
type RegisterInput struct {
	ShopName  string
	OwnerName string
	Email     string
	Password  string
}

// OrderInput carries the normalized fields for creating or updating an order.
// Products is always the canonical line-item list; the legacy flat product
// shape never crosses this boundary.
type OrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Products        []domain.LineItem
}

// AuthResult is returned by the login and registration endpoints on success.
type AuthResult struct {
	Token   string
	User    *domain.User
	Message string
}

// OrderAPI is the remote REST backend. Implementations classify transport
// failures into domain sentinels (ErrTimeout, ErrUnauthorized,
// ErrServerUnavailable) or *domain.RemoteError for backend-reported
// failures, so callers branch on errors.Is/As rather than status codes.
// The token is passed per call and must be read fresh by the caller; the
// client itself never caches it.
type OrderAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, token string, input OrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, token, id string, input OrderInput) error
	DeleteOrder(ctx context.Context, token, id string) error
}
