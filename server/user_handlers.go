package server

import "net/http"

// ProfileHandler returns the authenticated user. This doubles as the
// client's session hydration check: a 200 means the access cookie is live.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeJSONError(w, http.StatusUnauthorized, "no token provided")
			return
		}
		writeJSON(w, http.StatusOK, userResponse{User: user})
	}
}
