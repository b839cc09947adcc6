package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fitcheck/internal/httputil"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to process password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[req.Username]; taken {
		httputil.WriteConflict(w, "Username already exists")
		return
	}
	if _, taken := s.byEmail[req.Email]; taken {
		httputil.WriteConflict(w, "Email already registered")
		return
	}

	// The account stays pending until the emailed code is confirmed. The
	// dev server has no mailer; verify accepts any six-digit code.
	s.pending[req.Email] = &pendingSignup{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	httputil.WriteMessage(w, http.StatusCreated, "Verification code sent")
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email            string `json:"email"`
		VerificationCode string `json:"verificationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if len(req.VerificationCode) != 6 {
		httputil.WriteBadRequest(w, "Invalid verification code")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[req.Email]
	if !ok {
		httputil.WriteNotFound(w, "No pending signup for this email")
		return
	}
	delete(s.pending, req.Email)

	u := &user{
		ID:           uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.byUsername[u.Username] = u.ID

	s.writeAuthResponse(w, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[req.Email]
	if !ok {
		httputil.WriteUnauthorized(w, "Invalid email or password")
		return
	}
	u := s.users[id]

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		httputil.WriteUnauthorized(w, "Invalid email or password")
		return
	}

	s.writeAuthResponse(w, u)
}

// writeAuthResponse issues a token and returns it with the wire-shaped
// user. Caller holds the lock.
func (s *Server) writeAuthResponse(w http.ResponseWriter, u *user) {
	token, err := s.issueToken(u)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to issue token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"_id":      u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
	})
}

func (s *Server) issueToken(u *user) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
		"exp":      time.Now().Add(s.tokenMaxAge).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
