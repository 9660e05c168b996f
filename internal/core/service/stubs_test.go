package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

// stubAPI is an in-memory ports.OrderAPI. Each err field, when set, makes the
// corresponding call fail; calls counters record how often the backend was hit.
type stubAPI struct {
	loginResult *ports.AuthResult
	loginErr    error

	registerResult *ports.AuthResult
	registerErr    error

	meUser *domain.User
	meErr  error

	orders   []domain.Order
	listErr  error
	createID string

	createErr error
	updateErr error
	deleteErr error

	loginCalls  int
	meCalls     int
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	lastToken       string
	lastCreateInput ports.OrderInput
}

func (a *stubAPI) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	a.loginCalls++
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	return a.loginResult, nil
}

func (a *stubAPI) Register(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
	if a.registerErr != nil {
		return nil, a.registerErr
	}
	return a.registerResult, nil
}

func (a *stubAPI) Me(_ context.Context, token string) (*domain.User, error) {
	a.meCalls++
	a.lastToken = token
	if a.meErr != nil {
		return nil, a.meErr
	}
	return a.meUser, nil
}

func (a *stubAPI) ListOrders(_ context.Context, token string) ([]domain.Order, error) {
	a.listCalls++
	a.lastToken = token
	if a.listErr != nil {
		return nil, a.listErr
	}
	return a.orders, nil
}

func (a *stubAPI) CreateOrder(_ context.Context, token string, input ports.OrderInput) (*domain.Order, error) {
	a.createCalls++
	a.lastToken = token
	a.lastCreateInput = input
	if a.createErr != nil {
		return nil, a.createErr
	}
	id := a.createID
	if id == "" {
		id = "order_1"
	}
	return &domain.Order{
		ID:              id,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Products:        input.Products,
		OrderTime:       time.Now(),
	}, nil
}

func (a *stubAPI) UpdateOrder(_ context.Context, token, _ string, _ ports.OrderInput) error {
	a.updateCalls++
	a.lastToken = token
	return a.updateErr
}

func (a *stubAPI) DeleteOrder(_ context.Context, token, _ string) error {
	a.deleteCalls++
	a.lastToken = token
	return a.deleteErr
}

// stubStore is an in-memory ports.TokenStore.
type stubStore struct {
	token    string
	loadErr  error
	saveErr  error
	clearErr error

	saveCalls  int
	clearCalls int
}

func (s *stubStore) Load(_ context.Context) (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.token, nil
}

func (s *stubStore) Save(_ context.Context, token string) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

// fixedToken is a ports.TokenSource that always returns the same token.
type fixedToken string

func (t fixedToken) Token() string { return string(t) }

// blockingOrders wraps a ports.OrderService and parks Create until release is
// closed, signalling entry on the entered channel. Used to hold a submission
// in flight.
type blockingOrders struct {
	inner   ports.OrderService
	release <-chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (b *blockingOrders) List(ctx context.Context) ([]domain.Order, error) {
	return b.inner.List(ctx)
}

func (b *blockingOrders) Customers(ctx context.Context, query string) ([]domain.CustomerGroup, error) {
	return b.inner.Customers(ctx, query)
}

func (b *blockingOrders) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	return b.inner.Dashboard(ctx)
}

func (b *blockingOrders) Create(ctx context.Context, input ports.OrderInput) (*domain.Order, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return b.inner.Create(ctx, input)
}

func (b *blockingOrders) Update(ctx context.Context, id string, input ports.OrderInput) error {
	return b.inner.Update(ctx, id, input)
}

func (b *blockingOrders) Delete(ctx context.Context, id string) error {
	return b.inner.Delete(ctx, id)
}
