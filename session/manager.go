package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/jrsteele09/go-session-client/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

// Navigator moves the user to another page once the session has ended.
type Navigator interface {
	Navigate(ctx context.Context, page string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, page string) error

func (f NavigatorFunc) Navigate(ctx context.Context, page string) error {
	return f(ctx, page)
}

// Observer is notified about session lifecycle events.
type Observer interface {
	RefreshStarted()
	RefreshFinished(outcome RefreshOutcome, elapsed time.Duration)
	RequestRetried()
	SessionTerminated()
}

type noopObserver struct{}

func (noopObserver) RefreshStarted()                               {}
func (noopObserver) RefreshFinished(RefreshOutcome, time.Duration) {}
func (noopObserver) RequestRetried()                               {}
func (noopObserver) SessionTerminated()                            {}

// Manager owns the access token and the in-flight refresh of one client session.
// It is safe for concurrent use.
type Manager struct {
	config    config.SessionConfig
	store     storage.Store
	client    *http.Client
	navigator Navigator
	observer  Observer
	logger    zerolog.Logger

	// refreshGroup is the in-flight refresh marker: idle when empty,
	// refreshing while a call for refreshKey is running
	refreshGroup singleflight.Group
}

type Option func(*Manager)

// WithHTTPClient sets the client used for auth endpoints and authenticated requests.
// A cookie jar is added when the client has none, since the refresh token travels as a cookie.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

func WithNavigator(n Navigator) Option {
	return func(m *Manager) {
		m.navigator = n
	}
}

func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// New creates a session manager for the API described by cfg, keeping its state in store.
func New(cfg config.SessionConfig, store storage.Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("[session New] a store is required")
	}

	m := &Manager{
		config:   cfg,
		store:    store,
		observer: noopObserver{},
		logger:   log.Logger.With().Str("component", "session").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.client == nil {
		m.client = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	if m.client.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("[session New] failed to create cookie jar: %w", err)
		}
		client := *m.client
		client.Jar = jar
		m.client = &client
	}
	if m.navigator == nil {
		m.navigator = logNavigator{logger: m.logger}
	}
	if m.observer == nil {
		m.observer = noopObserver{}
	}
	return m, nil
}

// CookieJar returns the jar holding the refresh cookie.
func (m *Manager) CookieJar() http.CookieJar {
	return m.client.Jar
}

// accessToken reads the stored token; absent or unreadable yields "".
func (m *Manager) accessToken(ctx context.Context) string {
	token, err := m.store.Get(ctx, m.config.GetAccessTokenKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn().Err(err).Msg("failed to read access token")
		}
		return ""
	}
	return token
}

func (m *Manager) setAccessToken(ctx context.Context, token string) error {
	return m.store.Set(ctx, m.config.GetAccessTokenKey(), token)
}

func (m *Manager) endpoint(path string) string {
	return m.config.GetAPIBaseURL() + path
}

// logNavigator is used when no Navigator is supplied; there is no page to move to, so it only reports.
type logNavigator struct {
	logger zerolog.Logger
}

func (n logNavigator) Navigate(_ context.Context, page string) error {
	n.logger.Info().Str("page", page).Msg("session ended, returning to entry page")
	return nil
}
