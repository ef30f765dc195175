package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/jrsteele09/go-session-client/metrics"
	"github.com/jrsteele09/go-session-client/token"
	"github.com/jrsteele09/go-session-client/token/jwt"
	"github.com/jrsteele09/go-session-client/token/refresh"
	"github.com/jrsteele09/go-session-client/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Repos groups the storage the auth server depends on
type Repos struct {
	Users         users.UserRepo
	RefreshTokens refresh.Repo
}

// Server is a small auth API that speaks the protocol the session client expects:
// login, rotating refresh cookies, logout, a bearer protected resource and a WebSocket.
type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos
	logger zerolog.Logger

	accessTokens  *jwt.Creator
	inspector     *jwt.Inspector
	refreshTokens *refresh.Manager
	clock         func() time.Time

	registry *prometheus.Registry
	metrics  *metrics.ServerCollector
	upgrader websocket.Upgrader
}

type Option func(*Server)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock sets the time source for issuing and verifying access tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.clock = now
	}
}

// WithSigner replaces the signer built from the configured secret.
func WithSigner(signer token.Signer) Option {
	return func(s *Server) {
		s.accessTokens = jwt.NewCreator(s.config, signer)
		s.inspector = jwt.NewInspector(signer)
	}
}

func New(cfg config.Config, repos Repos, opts ...Option) (*Server, error) {
	s := &Server{
		env:           cfg.GetEnv(),
		mux:           http.NewServeMux(),
		config:        cfg,
		repos:         repos,
		logger:        log.Logger.With().Str("component", "server").Logger(),
		refreshTokens: refresh.NewManager(repos.RefreshTokens, cfg),
		registry:      prometheus.NewRegistry(),
	}

	signer, err := newSigner(cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token signer: %w", err)
	}
	s.accessTokens = jwt.NewCreator(cfg, signer)
	s.inspector = jwt.NewInspector(signer)

	for _, opt := range opts {
		opt(s)
	}
	if s.clock != nil {
		s.accessTokens.SetClock(s.clock)
		s.inspector.SetClock(s.clock)
	}

	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if s.metrics, err = metrics.NewServerCollector(s.registry); err != nil {
		return nil, fmt.Errorf("[Server New] failed to register metrics: %w", err)
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	if _, err := s.InitialiseSystem(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func newSigner(cfg config.TokenConfig) (token.Signer, error) {
	if secret := cfg.GetSigningSecret(); secret != "" {
		return token.NewHMACSigner(secret), nil
	}
	return token.NewRandomHMACSigner()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Registry returns the registry served on the metrics route.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	s.logger.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
