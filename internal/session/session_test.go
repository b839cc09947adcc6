package session

import (
	"context"
	"testing"

	"fitcheck/internal/model"
	"fitcheck/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	kv, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	return New(kv)
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	token, err := s.Token(ctx)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty before login", token)
	}
	if s.IsAuthenticated(ctx) {
		t.Error("fresh store must not be authenticated")
	}

	if err := s.SetToken(ctx, "jwt-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	token, err = s.Token(ctx)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q, want jwt-abc", token)
	}
	if !s.IsAuthenticated(ctx) {
		t.Error("expected authenticated after storing a token")
	}
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.User(ctx)
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil before login", user)
	}

	want := &model.UserData{ID: "u1", Username: "ava", Email: "ava@example.com"}
	if err := s.SetUser(ctx, want); err != nil {
		t.Fatalf("set user: %v", err)
	}

	user, err = s.User(ctx)
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user == nil || *user != *want {
		t.Errorf("user = %+v, want %+v", user, want)
	}
}

func TestStore_CorruptUserDataIsTreatedAsAbsent(t *testing.T) {
	kv, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	ctx := context.Background()

	if err := kv.Set(ctx, "user_data", "{not json"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	user, err := New(kv).User(ctx)
	if err != nil {
		t.Fatalf("corrupt data must not surface as an error, got: %v", err)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil for a corrupt record", user)
	}
}

func TestStore_LogoutClearsBothKeysAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetToken(ctx, "jwt-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.SetUser(ctx, &model.UserData{ID: "u1", Username: "ava"}); err != nil {
		t.Fatalf("set user: %v", err)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if s.IsAuthenticated(ctx) {
		t.Error("expected unauthenticated after logout")
	}
	user, err := s.User(ctx)
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil after logout", user)
	}

	// Logging out again must be a no-op, not an error.
	if err := s.Logout(ctx); err != nil {
		t.Errorf("second logout: %v, want nil", err)
	}
}

func TestStore_SessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := store.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := New(kv).SetToken(ctx, "jwt-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	kv.Close()

	kv, err = store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer kv.Close()

	token, err := New(kv).Token(ctx)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q, want jwt-abc after reopen", token)
	}
}
