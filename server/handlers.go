package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-session-client/authapi"
	sessionerrors "github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/jrsteele09/go-session-client/internal/utils"
	"github.com/jrsteele09/go-session-client/metrics"
	"github.com/jrsteele09/go-session-client/users"
)

const (
	endpointLogin   = "login"
	endpointRefresh = "refresh"
	endpointLogout  = "logout"
)

// LoginHandler checks the credentials, returns an access token and sets the refresh cookie
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authapi.LoginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			s.metrics.AuthRequest(endpointLogin, metrics.OutcomeRejected)
			writeError(w, http.StatusBadRequest, "invalid_request", "Malformed login body")
			return
		}

		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
		if err != nil || user == nil || user.Blocked || !user.CheckPassword(req.Password) {
			s.metrics.AuthRequest(endpointLogin, metrics.OutcomeRejected)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", sessionerrors.ErrInvalidCredentials.Error())
			return
		}

		if !s.issueTokens(w, r, user, endpointLogin) {
			return
		}
		if err := s.repos.Users.SetLastLogin(user.ID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
		}
		s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	}
}

// RefreshHandler rotates the refresh cookie and returns a fresh access token.
// A refresh token is accepted once; presenting it again is a 401.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authapi.RefreshCookieName)
		if err != nil || cookie.Value == "" {
			s.metrics.AuthRequest(endpointRefresh, metrics.OutcomeRejected)
			writeError(w, http.StatusUnauthorized, "invalid_grant", "Missing refresh token")
			return
		}

		newRefreshToken, userID, err := s.refreshTokens.Rotate(cookie.Value)
		if err != nil {
			s.metrics.AuthRequest(endpointRefresh, metrics.OutcomeRejected)
			s.ClearRefreshCookie(w, r)
			writeError(w, http.StatusUnauthorized, "invalid_grant", err.Error())
			return
		}

		user, err := s.repos.Users.GetByID(userID)
		if err != nil || user == nil || user.Blocked {
			s.metrics.AuthRequest(endpointRefresh, metrics.OutcomeRejected)
			_ = s.refreshTokens.Delete(utils.Value(newRefreshToken))
			s.ClearRefreshCookie(w, r)
			writeError(w, http.StatusUnauthorized, "invalid_grant", "Unknown user")
			return
		}

		accessToken, err := s.accessTokens.CreateAccessToken(user)
		if err != nil {
			s.internalError(w, endpointRefresh, err)
			return
		}

		s.SetRefreshCookie(w, utils.Value(newRefreshToken), r)
		s.metrics.AuthRequest(endpointRefresh, metrics.OutcomeOK)
		writeJSON(w, http.StatusOK, authapi.TokenResponse{AccessToken: utils.Value(accessToken)})
	}
}

// LogoutHandler revokes the refresh token, if any, and expires the cookie. It always answers 204.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(authapi.RefreshCookieName); err == nil && cookie.Value != "" {
			if err := s.refreshTokens.Delete(cookie.Value); err != nil {
				s.logger.Debug().Err(err).Msg("refresh token already gone")
			}
		}
		s.ClearRefreshCookie(w, r)
		s.metrics.AuthRequest(endpointLogout, metrics.OutcomeOK)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) issueTokens(w http.ResponseWriter, r *http.Request, user *users.User, endpoint string) bool {
	accessToken, err := s.accessTokens.CreateAccessToken(user)
	if err != nil {
		s.internalError(w, endpoint, err)
		return false
	}
	refreshToken, err := s.refreshTokens.Create(user.ID)
	if err != nil {
		s.internalError(w, endpoint, err)
		return false
	}

	s.SetRefreshCookie(w, utils.Value(refreshToken), r)
	s.metrics.AuthRequest(endpoint, metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, authapi.TokenResponse{AccessToken: utils.Value(accessToken)})
	return true
}

func (s *Server) internalError(w http.ResponseWriter, endpoint string, err error) {
	s.logger.Error().Err(err).Str("endpoint", endpoint).Msg("failed to issue tokens")
	s.metrics.AuthRequest(endpoint, metrics.OutcomeError)
	writeError(w, http.StatusInternalServerError, "server_error", "internal error")
}
