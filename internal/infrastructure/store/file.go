// Package store provides TokenStore implementations: a file-backed store
// for single-user installs and a Redis-backed store for shared terminals.
// Both persist exactly one opaque token under one key.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the session token in a mode-0600 file so it survives
// restarts of the console.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. An empty path defaults to
// storeflow/token under the user config directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("token store: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "storeflow", "token")
	}
	return &FileStore{path: path}, nil
}

// Load returns the persisted token, or "" when none has been saved.
func (s *FileStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token store: read %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory as needed.
func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token store: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("token store: write %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent token is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("token store: remove %s: %w", s.path, err)
	}
	return nil
}
