package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-client/authapi"
)

// MeHandler returns the user the bearer token was issued to
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing claims")
			return
		}

		user, err := s.repos.Users.GetByID(claims.Subject)
		if err != nil || user == nil {
			writeError(w, http.StatusNotFound, "not_found", "Unknown user")
			return
		}
		writeJSON(w, http.StatusOK, authapi.MeResponse{UserID: user.ID, Email: user.Email})
	}
}
