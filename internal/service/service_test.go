package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// =============================================================================
// FAKE SESSION
// =============================================================================
//
// Services depend on the Session interface, so tests swap the sqlite-backed
// store for an in-memory fake.

type fakeSession struct {
	token string
	user  *model.UserData
}

func (f *fakeSession) Token(ctx context.Context) (string, error) { return f.token, nil }

func (f *fakeSession) SetToken(ctx context.Context, token string) error {
	f.token = token
	return nil
}

func (f *fakeSession) User(ctx context.Context) (*model.UserData, error) { return f.user, nil }

func (f *fakeSession) SetUser(ctx context.Context, user *model.UserData) error {
	f.user = user
	return nil
}

func (f *fakeSession) IsAuthenticated(ctx context.Context) bool { return f.token != "" }

func (f *fakeSession) Logout(ctx context.Context) error {
	f.token = ""
	f.user = nil
	return nil
}

func loggedIn() *fakeSession {
	return &fakeSession{
		token: "jwt-abc",
		user:  &model.UserData{ID: "u1", Username: "ava", Email: "ava@example.com"},
	}
}

// newTestClient serves handler over httptest and returns a client wired to
// it. The server is torn down with the test.
func newTestClient(t *testing.T, sess Session, handler http.HandlerFunc) *transport.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return transport.NewClient(srv.URL, sess)
}

// deadClient fails the test if any request reaches the server. Used to prove
// guards fire before the network.
func deadClient(t *testing.T, sess Session) *transport.Client {
	t.Helper()
	return newTestClient(t, sess, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
