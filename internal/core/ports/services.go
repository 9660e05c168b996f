package ports

import (
	"context"

	"github.com/storeflow/order-console/internal/core/domain"
)

// AuthOutcome is the user-facing result of a login or registration attempt.
// Failures are folded into Message; no raw error escapes this boundary.
type AuthOutcome struct {
	Success bool
	Message string
}

// TokenSource exposes fresh read access to the current session token. Every
// component that attaches a bearer credential reads through this on each
// call instead of caching the token.
type TokenSource interface {
	Token() string
}

// SessionService owns the session lifecycle: the persisted token, the
// verified user profile, and the only mutation entry points for either.
type SessionService interface {
	TokenSource

	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) AuthOutcome
	Register(ctx context.Context, input RegisterInput) AuthOutcome
	Logout()
	User() *domain.User
	Loading() bool
}

// DashboardView bundles the derived dashboard figures with the activity grid.
type DashboardView struct {
	Stats    domain.DashboardStats
	Activity [][]domain.ActivityDay
}

// OrderService exposes the authenticated order operations and the derived
// views recomputed from a fresh fetch on every call.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Customers(ctx context.Context, query string) ([]domain.CustomerGroup, error)
	Dashboard(ctx context.Context) (*DashboardView, error)
	Create(ctx context.Context, input OrderInput) (*domain.Order, error)
	Update(ctx context.Context, id string, input OrderInput) error
	Delete(ctx context.Context, id string) error
}
