package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all local API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain sentinels to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details.
//   - Renders the same {"success": false, "message": ...} envelope the
//     remote backend uses, so front-ends treat both the same way.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Session and upstream failures → deterministic local codes.
	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized, "you must be logged in"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid or expired credentials"
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "the order service timed out"
	case errors.Is(err, domain.ErrServerUnavailable):
		return http.StatusBadGateway, "the order service is unavailable"
	}

	// Backend-reported failures pass the backend's message through; 4xx
	// statuses are preserved, everything else reads as a bad gateway.
	var remote *domain.RemoteError
	if errors.As(err, &remote) {
		msg := remote.Message
		if msg == "" {
			msg = "the order service rejected the request"
		}
		if remote.Status >= 400 && remote.Status < 500 {
			return remote.Status, msg
		}
		return http.StatusBadGateway, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
