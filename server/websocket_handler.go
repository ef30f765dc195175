package server

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/jrsteele09/go-session-client/authapi"
)

// WebSocketHandler authenticates the handshake and echoes every message back.
// The token is read from the query string first, then from a bearer header.
// An invalid token is refused with 401 before the upgrade.
func (s *Server) WebSocketHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get(authapi.TokenQueryParam)
		if token == "" {
			token, _ = bearerToken(r)
		}
		claims, err := s.inspector.Verify(token)
		if err != nil {
			s.logger.Debug().Err(err).Msg("websocket handshake rejected")
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already answered the client
			s.logger.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		s.metrics.WebSocketOpened()
		defer s.metrics.WebSocketClosed()
		s.logger.Debug().Str("user_id", claims.Subject).Msg("websocket connected")

		for {
			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug().Err(err).Str("user_id", claims.Subject).Msg("websocket closed")
				}
				return
			}
			if err := conn.WriteMessage(messageType, payload); err != nil {
				return
			}
		}
	}
}

// checkOrigin accepts non browser clients, same host origins and configured origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if s.config.GetAllowedOrigins().IsAllowedOrigin(origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
