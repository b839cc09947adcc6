// Package service holds the resource services: stateless wrappers around
// one REST resource family each. Services receive the transport client and
// the session explicitly and carry no business logic beyond request
// building, field mapping and error translation.
package service

import (
	"context"

	"fitcheck/internal/model"
)

// Session is the slice of the persisted session the services depend on.
// *session.Store satisfies it; tests substitute a fake.
type Session interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*model.UserData, error)
	SetUser(ctx context.Context, user *model.UserData) error
	IsAuthenticated(ctx context.Context) bool
	Logout(ctx context.Context) error
}

// requireAuth returns ErrNotAuthenticated when no token is stored, before
// any request is issued. Screens route to login on that error.
func requireAuth(ctx context.Context, sess Session) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return model.ErrNotAuthenticated
	}
	return nil
}
