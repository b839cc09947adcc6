// Package session persists the authenticated session (token and user
// identity) on the device. Services receive the store explicitly; there is
// no ambient global session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fitcheck/internal/model"
	"fitcheck/internal/store"
)

// Storage keys. These match the mobile client so a reinstalled app finds
// its session.
const (
	tokenKey = "auth_token"
	userKey  = "user_data"
)

// Store reads and writes the persisted session.
type Store struct {
	kv *store.KV
}

func New(kv *store.KV) *Store {
	return &Store{kv: kv}
}

// SetToken stores the authentication token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.kv.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("store auth token: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when absent. Absence is not an
// error at this layer; callers decide whether a missing token matters.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("read auth token: %w", err)
	}
	return token, nil
}

// SetUser stores the user identity as JSON under user_data.
func (s *Store) SetUser(ctx context.Context, user *model.UserData) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}
	if err := s.kv.Set(ctx, userKey, string(raw)); err != nil {
		return fmt.Errorf("store user data: %w", err)
	}
	return nil
}

// User returns the stored identity, or nil when absent. A corrupt record is
// treated as absent rather than fatal.
func (s *Store) User(ctx context.Context) (*model.UserData, error) {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("read user data: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user model.UserData
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("[Session] Discarding corrupt user data: %v", err)
		return nil, nil
	}
	return &user, nil
}

// IsAuthenticated reports whether a non-empty token is present. It does not
// check token freshness with the server.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	if err != nil {
		return false
	}
	return token != ""
}

// Logout removes the token and user data in one transaction. Calling it
// with no active session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey, userKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
