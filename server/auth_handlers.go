package server

import (
	"encoding/json"
	"net/http"

	"github.com/inkwell-labs/bookstore/auth"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/users"
)

type userResponse struct {
	Message string      `json:"message,omitempty"`
	User    *users.User `json:"user"`
}

// RegisterHandler creates a new account. 201 on success, 400 on duplicate
// email or failed field validation.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.auth.Register(r.Context(), req)
		if err != nil {
			s.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, userResponse{Message: "user registered successfully", User: user})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials and sets both auth cookies. The refresh
// token is persisted inside Login before any cookie is written here.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.setAccessCookie(w, result.AccessToken)
		s.setRefreshCookie(w, result.RefreshToken)
		writeJSON(w, http.StatusCreated, userResponse{User: result.User})
	}
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// RefreshHandler swaps a valid refresh cookie for a fresh access token. A
// token that fails the store match clears the refresh cookie so the client
// stops retrying a dead session.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := cookieValue(r, refreshTokenCookieName)

		accessToken, err := s.auth.Refresh(r.Context(), refreshToken)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrRefreshTokenMismatch) {
				s.clearAuthCookies(w)
			}
			s.writeError(w, err)
			return
		}

		s.setAccessCookie(w, accessToken)
		writeJSON(w, http.StatusCreated, refreshResponse{AccessToken: accessToken})
	}
}

// LogoutHandler clears both cookies and drops the stored refresh token. A
// still-unexpired access token kept by a misbehaving client remains valid
// until natural expiry; stateless tokens cannot be server-revoked.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := cookieValue(r, refreshTokenCookieName)

		if err := s.auth.Logout(r.Context(), refreshToken); err != nil {
			s.writeError(w, err)
			return
		}

		s.clearAuthCookies(w)
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}
