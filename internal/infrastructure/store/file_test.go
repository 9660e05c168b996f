package store

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "tok_abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "tok_abc" {
		t.Errorf("expected tok_abc, got %q", got)
	}
}

func TestFileStore_LoadAbsentReturnsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error for an absent token, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	// A second clear with nothing persisted must not fail.
	if err := s.Clear(ctx); err != nil {
		t.Errorf("Clear on absent token: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil || got != "" {
		t.Errorf("expected empty after clear, got %q / %v", got, err)
	}
}

func TestFileStore_TokenFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "token")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Save(context.Background(), "tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 token file, got %o", perm)
	}
}
