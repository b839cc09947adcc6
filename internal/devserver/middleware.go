package devserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"fitcheck/internal/httputil"
)

// contextKey is a private type so the context key cannot collide.
type contextKey string

const userIDKey contextKey = "user_id"

// requireAuth validates the session token. The FitCheck client sends the
// raw token in Authorization; a Bearer prefix is also accepted for manual
// curl testing.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if after, ok := strings.CutPrefix(tokenString, "Bearer "); ok {
			tokenString = after
		}
		if tokenString == "" {
			httputil.WriteUnauthorized(w, "Missing authentication token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			httputil.WriteUnauthorized(w, "Invalid authentication token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httputil.WriteUnauthorized(w, "Invalid authentication token")
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			httputil.WriteUnauthorized(w, "Invalid authentication token")
			return
		}

		s.mu.Lock()
		_, exists := s.users[userID]
		s.mu.Unlock()
		if !exists {
			httputil.WriteUnauthorized(w, "Unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// viewerID returns the authenticated user id stored by requireAuth.
func viewerID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
