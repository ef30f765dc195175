package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+authapi.RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+authapi.RouteRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+authapi.RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Protected API routes (require a valid bearer access token)
	s.RegisterRouteHandler("GET "+authapi.RouteMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// The token arrives in the query string, browsers cannot set headers on the handshake
	s.RegisterRouteHandler("GET "+authapi.RouteWebSocket, ChainMiddleware(s.WebSocketHandler(), s.LoggingMiddleware, s.RecoverMiddleware))

	s.RegisterRouteHandler("GET "+authapi.RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// PreflightHandler answers CORS preflight requests; the headers come from CorsMiddleware.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
