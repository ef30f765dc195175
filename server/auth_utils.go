package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-session-client/authapi"
)

func (s *Server) SetRefreshCookie(w http.ResponseWriter, refreshToken string, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authapi.RefreshCookieName,
		Value:    refreshToken,
		Path:     authapi.RefreshCookiePath,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.config.GetRefreshTokenExpiry().Seconds()),
	})
}

func (s *Server) ClearRefreshCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authapi.RefreshCookieName,
		Value:    "",
		Path:     authapi.RefreshCookiePath,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, authapi.ErrorResponse{Error: code, ErrorDescription: description})
}
