package ports

import "context"

// TokenStore persists the single opaque session token across process
// restarts. Load returns an empty string (not an error) when no token has
// been stored. The token is cleared only on explicit logout or a confirmed
// invalid-credential response from the backend.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
