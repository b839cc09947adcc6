package model

import "errors"

// UserData is the authenticated user's identity as persisted on the device
// under the user_data key.
type UserData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserSummary is the embedded owner shape the backend nests inside posts,
// comments and daily posts.
type UserSummary struct {
	ID                string `json:"_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body for POST /signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the body for POST /verify.
type VerifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// AuthResponse is returned by login and verify. The wire user carries the
// Mongo-style _id field.
type AuthResponse struct {
	Token string `json:"token"`
	User  *struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

var (
	// ErrNotAuthenticated is returned when an operation needs a session and
	// no token is stored. Callers route to login instead of issuing the call.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrUserDataMissing is returned when the token exists but user_data
	// cannot be resolved.
	ErrUserDataMissing = errors.New("user data not available")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
