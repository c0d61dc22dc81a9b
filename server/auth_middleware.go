package server

import (
	"context"
	"net/http"

	"github.com/inkwell-labs/bookstore/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated *users.User
const ContextKeyUser ContextKey = "user"

// RequireAuth validates the access-token cookie and injects the user into
// the request context. Verification is purely cryptographic plus a user
// lookup; the refresh token plays no part here.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessToken := cookieValue(r, accessTokenCookieName)
			if accessToken == "" {
				writeJSONError(w, http.StatusUnauthorized, "no token provided")
				return
			}

			user, err := s.auth.Profile(r.Context(), accessToken)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin gates admin-only routes. Chained after RequireAuth.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil || !user.IsAdmin {
				writeJSONError(w, http.StatusForbidden, "admin access required")
				return
			}
			next(w, r)
		}
	}
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(ContextKeyUser).(*users.User)
	return user
}
