package domain

import (
	"errors"
	"fmt"
)

var ErrNotLoggedIn = errors.New("not logged in")
var ErrUnauthorized = errors.New("invalid or expired credentials")
var ErrTimeout = errors.New("request timed out")
var ErrServerUnavailable = errors.New("server unavailable")
var ErrSubmitInFlight = errors.New("submission already in progress")

// RemoteError carries a failure reported by the backend itself: either a
// non-2xx status below 500, or a 2xx body whose success flag is false.
// Message holds the backend-supplied text when present, so callers can
// surface it verbatim.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}
