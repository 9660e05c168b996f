package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// OrderService gates every order operation on the presence of a session
// token and recomputes all derived views from a fresh fetch. There is no
// incremental update path: after any mutation the next view call re-fetches
// and re-derives, which keeps derived state from drifting and is cheap for
// the bounded per-account dataset.
type OrderService struct {
	api    ports.OrderAPI
	tokens ports.TokenSource
	logger zerolog.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewOrderService(api ports.OrderAPI, tokens ports.TokenSource, logger zerolog.Logger) *OrderService {
	return &OrderService{api: api, tokens: tokens, logger: logger, now: time.Now}
}

// List fetches the account's full order list. Without a token it fails
// locally with ErrNotLoggedIn and never issues the request.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, domain.ErrNotLoggedIn
	}

	orders, err := s.api.ListOrders(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch orders")
		return nil, err
	}
	return orders, nil
}

// Customers returns the grouped-by-customer view narrowed by the query.
func (s *OrderService) Customers(ctx context.Context, query string) ([]domain.CustomerGroup, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterGroups(domain.GroupByCustomer(orders), query), nil
}

// Dashboard returns the headline stats and the 52-week activity grid.
func (s *OrderService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	return &ports.DashboardView{
		Stats:    domain.ComputeStats(orders, today),
		Activity: domain.BuildActivityGrid(orders, today),
	}, nil
}

// Create submits a new order. The backend assigns the identity; the client
// never originates one.
func (s *OrderService) Create(ctx context.Context, input ports.OrderInput) (*domain.Order, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, domain.ErrNotLoggedIn
	}

	created, err := s.api.CreateOrder(ctx, token, input)
	if err != nil {
		s.logger.Warn().Err(err).Str("customer", input.CustomerName).Msg("failed to create order")
		return nil, err
	}
	s.logger.Info().Str("order_id", created.ID).Str("customer", created.CustomerName).Msg("order created")
	return created, nil
}

// Update replaces an existing order's fields.
func (s *OrderService) Update(ctx context.Context, id string, input ports.OrderInput) error {
	token := s.tokens.Token()
	if token == "" {
		return domain.ErrNotLoggedIn
	}

	if err := s.api.UpdateOrder(ctx, token, id, input); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to update order")
		return err
	}
	s.logger.Info().Str("order_id", id).Msg("order updated")
	return nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	token := s.tokens.Token()
	if token == "" {
		return domain.ErrNotLoggedIn
	}

	if err := s.api.DeleteOrder(ctx, token, id); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to delete order")
		return err
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}
