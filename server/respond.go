package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
)

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeError maps the error taxonomy onto HTTP statuses. Anything
// unrecognized is an opaque 500; details stay in the server log.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if apperrors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Fields:  validationErr.Fields,
		})
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrDuplicateEmail):
		writeJSONError(w, http.StatusBadRequest, "user already exists with this email")
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		// Generic message: do not reveal whether the email exists.
		writeJSONError(w, http.StatusBadRequest, "invalid email or password")
	case apperrors.Is(err, apperrors.ErrNoRefreshToken):
		writeJSONError(w, http.StatusForbidden, "no refresh token found")
	case apperrors.Is(err, apperrors.ErrRefreshTokenMismatch):
		writeJSONError(w, http.StatusUnauthorized, "token mismatch or expired")
	case apperrors.Is(err, apperrors.ErrTokenExpired),
		apperrors.Is(err, apperrors.ErrTokenSignatureInvalid),
		apperrors.Is(err, apperrors.ErrTokenMalformed):
		writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
	case apperrors.Is(err, apperrors.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeJSONError(w, http.StatusInternalServerError, "server error")
	}
}
