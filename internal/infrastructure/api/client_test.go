package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL}, discardLogger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

// ---------------------------------------------------------------------------
// Auth endpoints
// ---------------------------------------------------------------------------

func TestClient_Login_Success(t *testing.T) {
	var gotBody map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok_abc",
			"user":    map[string]string{"_id": "u1", "shopName": "Ana's", "email": "ana@shop.test"},
		})
	}))

	res, err := c.Login(context.Background(), "ana@shop.test", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["email"] != "ana@shop.test" || gotBody["password"] != "secret" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if res.Token != "tok_abc" {
		t.Errorf("expected token, got %q", res.Token)
	}
	// Mongo-style _id must map onto the domain id.
	if res.User == nil || res.User.ID != "u1" {
		t.Errorf("unexpected user: %+v", res.User)
	}
}

// A 2xx whose envelope says success=false is a failure with the backend text.
func TestClient_Login_EnvelopeFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	}))

	_, err := c.Login(context.Background(), "ana@shop.test", "wrong")

	var remote *domain.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Message != "Invalid credentials" {
		t.Errorf("expected backend message, got %q", remote.Message)
	}
}

func TestClient_Me_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]string{"id": "u1", "email": "ana@shop.test"},
		})
	}))

	user, err := c.Me(context.Background(), "tok_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok_abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected user: %+v", user)
	}
}

// ---------------------------------------------------------------------------
// Failure classification
// ---------------------------------------------------------------------------

func TestClient_StatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrUnauthorized},
		{"internal", http.StatusInternalServerError, domain.ErrServerUnavailable},
		{"bad_gateway", http.StatusBadGateway, domain.ErrServerUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))

			_, err := c.Me(context.Background(), "tok")
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, VerifyTimeout: 30 * time.Millisecond}, discardLogger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Me(context.Background(), "tok")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestClient_NetworkErrorIsNotTimeout(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, discardLogger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Me(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("connection refused misclassified: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func TestClient_ListOrders_NormalizesLegacyRecords(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"_id":          "o1",
					"customerName": "Ana",
					"products": []map[string]any{
						{"name": "mug", "quantity": 2, "price": 5},
					},
					"orderTime": "2026-08-30T10:00:00Z",
				},
				{
					"_id":          "o2",
					"customerName": "Ben",
					"product":      "old widget",
					"orderTime":    "2024-01-15T10:00:00Z",
				},
			},
		})
	}))

	orders, err := c.ListOrders(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	if orders[0].ID != "o1" || len(orders[0].Products) != 1 || orders[0].Total() != 10 {
		t.Errorf("unexpected current-shape order: %+v", orders[0])
	}

	// The legacy flat product becomes one line item; the absent quantity and
	// price stay zero so the total reads as missing.
	legacy := orders[1]
	if len(legacy.Products) != 1 || legacy.Products[0].Name != "old widget" {
		t.Fatalf("legacy record not normalized: %+v", legacy)
	}
	if legacy.Products[0].Quantity != 0 || legacy.Products[0].Price != 0 {
		t.Errorf("legacy fields must stay as given: %+v", legacy.Products[0])
	}
	if legacy.Total() != 0 {
		t.Errorf("expected zero total for legacy record, got %v", legacy.Total())
	}
}

func TestClient_CreateOrder(t *testing.T) {
	var gotReq orderRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id":           "o_new",
				"customerName": gotReq.CustomerName,
				"products":     gotReq.Products,
				"orderTime":    time.Now().UTC().Format(time.RFC3339),
			},
		})
	}))

	created, err := c.CreateOrder(context.Background(), "tok", ports.OrderInput{
		CustomerName: "Ana", CustomerPhone: "555-1", CustomerAddress: "1 Main",
		Products: []domain.LineItem{{Name: "mug", Quantity: 2, Price: 5}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "o_new" {
		t.Errorf("expected backend id, got %q", created.ID)
	}
	if len(gotReq.Products) != 1 || gotReq.Products[0].Name != "mug" {
		t.Errorf("unexpected wire payload: %+v", gotReq)
	}
}

func TestClient_UpdateAndDelete(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	if err := c.UpdateOrder(context.Background(), "tok", "o1", ports.OrderInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/orders/o1" {
		t.Errorf("unexpected update request: %s %s", gotMethod, gotPath)
	}

	if err := c.DeleteOrder(context.Background(), "tok", "o1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/orders/o1" {
		t.Errorf("unexpected delete request: %s %s", gotMethod, gotPath)
	}
}
