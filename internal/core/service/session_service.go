package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/api/metrics"
	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/ports"
)

const (
	msgTimeout      = "Request timeout. Please check your internet connection."
	msgServerError  = "Server error. Please try again later."
	msgLoginFail    = "Login failed. Please try again."
	msgRegisterFail = "Registration failed. Please try again."
)

// SessionService implements the session lifecycle: startup verification of a
// persisted token, login, registration, and logout. It is the sole writer of
// the shared token; every other component reads it fresh through Token().
type SessionService struct {
	api    ports.OrderAPI
	store  ports.TokenStore
	logger zerolog.Logger

	mu      sync.RWMutex
	token   string
	user    *domain.User
	loading bool
}

func NewSessionService(api ports.OrderAPI, store ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{api: api, store: store, logger: logger}
}

// Initialize loads a persisted token and verifies it against the backend.
// A confirmed authorization failure discards the token; any other failure
// (timeout, 5xx, network) keeps the token and leaves the session
// unauthenticated, so a transient backend outage never evicts a previously
// valid session.
func (s *SessionService) Initialize(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load persisted token")
		return
	}
	if token == "" {
		return
	}

	user, err := s.api.Me(ctx, token)
	switch {
	case err == nil:
		s.adopt(token, user)
		metrics.SessionVerificationsTotal.WithLabelValues("adopted").Inc()
		s.logger.Info().Str("email", user.Email).Msg("session restored")
	case errors.Is(err, domain.ErrUnauthorized):
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.logger.Warn().Err(clearErr).Msg("failed to clear rejected token")
		}
		s.adopt("", nil)
		metrics.SessionVerificationsTotal.WithLabelValues("rejected").Inc()
		s.logger.Info().Msg("persisted token rejected, session cleared")
	default:
		// Verification could not complete; keep the token for next time.
		s.adopt(token, nil)
		metrics.SessionVerificationsTotal.WithLabelValues("deferred").Inc()
		s.logger.Warn().Err(err).Msg("token verification skipped, backend unavailable")
	}
}

// Login authenticates against the backend and persists the returned token.
// Failures are classified into a user-facing message; no error propagates.
func (s *SessionService) Login(ctx context.Context, email, password string) ports.AuthOutcome {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return classifyAuthError(err, msgLoginFail)
	}

	s.persist(ctx, res.Token)
	s.adopt(res.Token, res.User)
	return ports.AuthOutcome{Success: true, Message: res.Message}
}

// Register creates a shop account; same contract as Login.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) ports.AuthOutcome {
	res, err := s.api.Register(ctx, input)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("registration failed")
		return classifyAuthError(err, msgRegisterFail)
	}

	s.persist(ctx, res.Token)
	s.adopt(res.Token, res.User)
	return ports.AuthOutcome{Success: true, Message: res.Message}
}

// Logout clears the persisted token and the in-memory profile
// unconditionally. No network call is made.
func (s *SessionService) Logout() {
	if err := s.store.Clear(context.Background()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted token")
	}
	s.adopt("", nil)
}

// Token returns the current session token, or "" when logged out. Callers
// must invoke this per request rather than caching the result.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the verified profile, or nil when unauthenticated. Non-nil
// only while a token is held.
func (s *SessionService) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether startup verification is still in progress.
func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionService) adopt(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *SessionService) persist(ctx context.Context, token string) {
	if err := s.store.Save(ctx, token); err != nil {
		// The session still works in memory; it just won't survive a restart.
		s.logger.Warn().Err(err).Msg("failed to persist token")
	}
}

func (s *SessionService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// classifyAuthError folds a transport or backend error into the advisory
// message shown to the user, preferring the backend-supplied text.
func classifyAuthError(err error, fallback string) ports.AuthOutcome {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return ports.AuthOutcome{Message: msgTimeout}
	case errors.Is(err, domain.ErrServerUnavailable):
		return ports.AuthOutcome{Message: msgServerError}
	}

	var remote *domain.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return ports.AuthOutcome{Message: remote.Message}
	}
	return ports.AuthOutcome{Message: fallback}
}
