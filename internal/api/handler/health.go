package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

// HealthHandler handles GET /healthz — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// SessionHandler reports the console's session state: whether a token is
// held and which profile, if any, was verified.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Success       bool         `json:"success"`
	Authenticated bool         `json:"authenticated"`
	HasToken      bool         `json:"hasToken"`
	User          *domain.User `json:"user,omitempty"`
}

func (h *SessionHandler) Current(c echo.Context) error {
	user := h.sessions.User()
	return c.JSON(http.StatusOK, sessionResponse{
		Success:       true,
		Authenticated: user != nil,
		HasToken:      h.sessions.Token() != "",
		User:          user,
	})
}
