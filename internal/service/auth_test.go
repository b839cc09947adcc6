package service

import (
	"context"
	"errors"
	"testing"

	"fitcheck/internal/model"
)

func TestAuth_LoginStoresSession(t *testing.T) {
	sess := &fakeSession{}
	client := newTestClient(t, sess, jsonHandler(200,
		`{"token":"jwt-abc","user":{"_id":"u1","username":"ava","email":"ava@example.com"}}`))

	user, err := NewAuth(client, sess).Login(context.Background(), "ava@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if user == nil || user.Username != "ava" {
		t.Fatalf("user = %+v, want ava", user)
	}
	if sess.token != "jwt-abc" {
		t.Errorf("stored token = %q, want jwt-abc", sess.token)
	}
	if sess.user == nil || sess.user.ID != "u1" {
		t.Errorf("stored user = %+v, want id u1", sess.user)
	}
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	sess := &fakeSession{}
	client := newTestClient(t, sess, jsonHandler(401, `{"message":"Invalid email or password"}`))

	_, err := NewAuth(client, sess).Login(context.Background(), "ava@example.com", "wrong")
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if sess.token != "" {
		t.Errorf("token = %q, want nothing stored after a failed login", sess.token)
	}
}

func TestAuth_LoginWithoutTokenInResponse(t *testing.T) {
	sess := &fakeSession{}
	client := newTestClient(t, sess, jsonHandler(200, `{"user":{"_id":"u1","username":"ava"}}`))

	if _, err := NewAuth(client, sess).Login(context.Background(), "a@b.c", "x"); err == nil {
		t.Fatal("expected an error for a tokenless auth response")
	}
}

func TestAuth_VerifyStoresSession(t *testing.T) {
	sess := &fakeSession{}
	client := newTestClient(t, sess, jsonHandler(200,
		`{"token":"jwt-new","user":{"_id":"u2","username":"bo","email":"bo@example.com"}}`))

	user, err := NewAuth(client, sess).Verify(context.Background(), "bo@example.com", "123456")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user == nil || user.Username != "bo" {
		t.Errorf("user = %+v, want bo", user)
	}
	if sess.token != "jwt-new" {
		t.Errorf("stored token = %q, want jwt-new", sess.token)
	}
}

func TestAuth_LogoutClearsSession(t *testing.T) {
	sess := loggedIn()
	client := deadClient(t, sess)

	// Logout is purely local; no request goes out.
	if err := NewAuth(client, sess).Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if sess.token != "" || sess.user != nil {
		t.Errorf("session = %q/%+v, want cleared", sess.token, sess.user)
	}
}
