package service

import (
	"context"
	"fmt"
	"log"

	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// Auth handles login, signup and account verification, persisting the
// session on success.
type Auth struct {
	client  *transport.Client
	session Session
}

func NewAuth(client *transport.Client, sess Session) *Auth {
	return &Auth{client: client, session: sess}
}

// Login exchanges credentials for a token and stores the session.
func (s *Auth) Login(ctx context.Context, email, password string) (*model.UserData, error) {
	var resp model.AuthResponse
	err := s.client.Post(ctx, "/login", model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if transport.StatusOf(err) == 401 {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	return s.storeSession(ctx, &resp)
}

// Signup registers a new account. The account stays unusable until Verify
// succeeds with the emailed code.
func (s *Auth) Signup(ctx context.Context, username, email, password string) error {
	err := s.client.Post(ctx, "/signup", model.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// Verify confirms the emailed code and stores the session returned for the
// freshly activated account.
func (s *Auth) Verify(ctx context.Context, email, code string) (*model.UserData, error) {
	var resp model.AuthResponse
	err := s.client.Post(ctx, "/verify", model.VerifyRequest{
		Email:            email,
		VerificationCode: code,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	return s.storeSession(ctx, &resp)
}

// Logout clears the persisted session. Safe to call when already logged
// out.
func (s *Auth) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

func (s *Auth) storeSession(ctx context.Context, resp *model.AuthResponse) (*model.UserData, error) {
	if resp.Token == "" {
		return nil, fmt.Errorf("auth response carried no token")
	}
	if err := s.session.SetToken(ctx, resp.Token); err != nil {
		return nil, err
	}

	if resp.User == nil {
		log.Println("[Auth] Response carried no user object; session has token only")
		return nil, nil
	}

	user := &model.UserData{
		ID:       resp.User.ID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
	}
	if err := s.session.SetUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
