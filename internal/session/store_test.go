package session

import (
	"context"
	"testing"

	"taskdeck/internal/model"
)

func TestRestoreEmptyStore(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u, ok, err := s.Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if ok || u != nil {
		t.Fatalf("fresh store must restore unauthenticated, got %v", u)
	}
	if s.Token() != "" {
		t.Fatalf("fresh store must hold no token")
	}
}

func TestLoginPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	user := model.User{ID: "u1", Username: "admin", Email: "admin@example.com"}
	if err := s.Login(ctx, "tok-1", user); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Token() != "tok-1" {
		t.Fatalf("expected token in memory after login")
	}

	// A new process restores the same session.
	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	u, ok, err := s2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !ok || u == nil || u.Username != "admin" {
		t.Fatalf("expected restored session, got %v %v", ok, u)
	}
	if s2.Token() != "tok-1" {
		t.Fatalf("expected restored token")
	}
}

func TestLogoutClearsBothKeys(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Login(ctx, "tok-1", model.User{ID: "u1", Username: "admin"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Token() != "" || s.User() != nil {
		t.Fatalf("logout must clear in-memory session")
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, ok, err := s2.Restore(ctx); err != nil || ok {
		t.Fatalf("logout must clear persisted session, got ok=%v err=%v", ok, err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load empty config: %v", err)
	}
	if cfg.ServerURL != "" {
		t.Fatalf("expected empty default config")
	}

	cfg.ServerURL = "http://tasks.internal:8000/api"
	cfg.ExportDir = "/tmp/exports"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ServerURL != cfg.ServerURL || got.ExportDir != cfg.ExportDir {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
