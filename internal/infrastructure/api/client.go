// Package api implements the HTTP client for the remote StoreFlow REST
// backend. It owns the wire schema, the per-endpoint timeouts, and the
// classification of failures into domain sentinels.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/api/metrics"
	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

const (
	defaultVerifyTimeout = 5 * time.Second
	defaultAuthTimeout   = 10 * time.Second
	defaultOrderTimeout  = 15 * time.Second
)

// Config configures the backend client. BaseURL is required; zero timeouts
// fall back to the defaults (5s identity verification, 10s login and
// registration, 15s order CRUD).
type Config struct {
	BaseURL       string
	HTTPClient    *http.Client
	VerifyTimeout time.Duration
	AuthTimeout   time.Duration
	OrderTimeout  time.Duration
}

// Client talks to the StoreFlow REST API. It satisfies ports.OrderAPI and
// never caches the bearer token; callers pass it per request.
type Client struct {
	baseURL       string
	client        *http.Client
	verifyTimeout time.Duration
	authTimeout   time.Duration
	orderTimeout  time.Duration
	logger        zerolog.Logger
}

// NewClient builds a backend client from the given configuration.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("storeflow api: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		baseURL:       cfg.BaseURL,
		client:        httpClient,
		verifyTimeout: cfg.VerifyTimeout,
		authTimeout:   cfg.AuthTimeout,
		orderTimeout:  cfg.OrderTimeout,
		logger:        logger,
	}
	if c.verifyTimeout <= 0 {
		c.verifyTimeout = defaultVerifyTimeout
	}
	if c.authTimeout <= 0 {
		c.authTimeout = defaultAuthTimeout
	}
	if c.orderTimeout <= 0 {
		c.orderTimeout = defaultOrderTimeout
	}
	return c, nil
}

// Login calls the login endpoint with the auth timeout.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	var resp authResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, User: resp.User.toDomain(), Message: resp.Message}, nil
}

// Register calls the registration endpoint with the auth timeout.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	req := registerRequest{
		ShopName:  input.ShopName,
		OwnerName: input.OwnerName,
		Email:     input.Email,
		Password:  input.Password,
	}
	var resp authResponse
	if err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, User: resp.User.toDomain(), Message: resp.Message}, nil
}

// Me verifies a token against the identity endpoint with the (shorter)
// verification timeout.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.verifyTimeout)
	defer cancel()

	var resp meResponse
	if err := c.do(ctx, "me", http.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &domain.RemoteError{Status: http.StatusOK, Message: "identity response missing user"}
	}
	return resp.User.toDomain(), nil
}

// ListOrders fetches the account's full order list, normalizing legacy
// single-product records into the canonical line-item shape.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var resp listOrdersResponse
	if err := c.do(ctx, "list_orders", http.MethodGet, "/api/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(resp.Data))
	for i, rec := range resp.Data {
		orders[i] = rec.toDomain()
	}
	return orders, nil
}

// CreateOrder posts a new order and returns the backend-assigned record.
func (c *Client) CreateOrder(ctx context.Context, token string, input ports.OrderInput) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var resp orderResponse
	if err := c.do(ctx, "create_order", http.MethodPost, "/api/orders", token, toOrderRequest(input), &resp); err != nil {
		return nil, err
	}
	created := resp.Data.toDomain()
	return &created, nil
}

// UpdateOrder replaces an order's fields.
func (c *Client) UpdateOrder(ctx context.Context, token, id string, input ports.OrderInput) error {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var resp envelope
	return c.do(ctx, "update_order", http.MethodPut, "/api/orders/"+id, token, toOrderRequest(input), &resp)
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, token, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var resp envelope
	return c.do(ctx, "delete_order", http.MethodDelete, "/api/orders/"+id, token, nil, &resp)
}

// do performs one round-trip: encode the payload, attach the bearer token,
// decode the enveloped response, and classify failures. The outcome is
// recorded per endpoint for metrics.
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, payload any, target enveloped) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, token, payload, target)
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(endpoint, outcomeLabel(err)).Inc()
	if err != nil {
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("api call failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, payload any, target enveloped) error {
	var body bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("storeflow api: encode payload: %w", err)
		}
		body.Reset(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("storeflow api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s %s", domain.ErrTimeout, method, path)
		}
		return fmt.Errorf("storeflow api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", domain.ErrServerUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if resp.StatusCode >= 300 {
			return &domain.RemoteError{Status: resp.StatusCode}
		}
		return fmt.Errorf("storeflow api: decode response: %w", err)
	}

	// The success flag is authoritative: a 2xx with success=false is still a
	// failure, carrying the backend's message when one was given.
	if !target.ok() {
		return &domain.RemoteError{Status: resp.StatusCode, Message: target.note()}
	}
	return nil
}

func outcomeLabel(err error) string {
	var remote *domain.RemoteError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrServerUnavailable):
		return "server_error"
	case errors.As(err, &remote):
		return "remote_error"
	default:
		return "network_error"
	}
}
