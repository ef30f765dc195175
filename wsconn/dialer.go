// Package wsconn opens authenticated WebSocket connections for a session.
package wsconn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dialer connects to one WebSocket endpoint, passing the access token as the
// token query parameter and as a bearer header. Connect has the shape of
// session.ConnectFunc so it can be handed to Manager.ConnectWebSocket.
type Dialer struct {
	endpoint *url.URL
	dialer   *websocket.Dialer
	logger   zerolog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

type Option func(*Dialer)

// WithDialer replaces websocket.DefaultDialer, for instance to share a cookie jar.
func WithDialer(d *websocket.Dialer) Option {
	return func(w *Dialer) {
		w.dialer = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(w *Dialer) {
		w.logger = l
	}
}

// NewDialer creates a dialer for endpoint, which must be a ws or wss URL.
func NewDialer(endpoint string, opts ...Option) (*Dialer, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("[wsconn NewDialer] invalid endpoint: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("[wsconn NewDialer] unsupported scheme %q", u.Scheme)
	}

	d := &Dialer{
		endpoint: u,
		dialer:   websocket.DefaultDialer,
		logger:   log.Logger.With().Str("component", "wsconn").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Connect dials the endpoint with token. On success the connection replaces
// any earlier one, which is closed.
func (d *Dialer) Connect(ctx context.Context, token string) error {
	target := *d.endpoint
	header := http.Header{}
	if token != "" {
		q := target.Query()
		q.Set(authapi.TokenQueryParam, token)
		target.RawQuery = q.Encode()
		header.Set("Authorization", authapi.BearerScheme+" "+token)
	}

	conn, res, err := d.dialer.DialContext(ctx, target.String(), header)
	if res != nil && res.Body != nil {
		res.Body.Close()
	}
	if err != nil {
		// never log target, it carries the token
		d.logger.Debug().Err(err).Str("endpoint", d.endpoint.Redacted()).Msg("websocket dial failed")
		if res != nil {
			return &errors.StatusError{Endpoint: d.endpoint.Path, StatusCode: res.StatusCode, Err: err}
		}
		return fmt.Errorf("dial %s: %w", d.endpoint.Redacted(), err)
	}

	d.mu.Lock()
	previous := d.conn
	d.conn = conn
	d.mu.Unlock()
	if previous != nil {
		previous.Close()
	}
	d.logger.Debug().Str("endpoint", d.endpoint.Redacted()).Msg("websocket connected")
	return nil
}

// Conn returns the last established connection, or nil.
func (d *Dialer) Conn() *websocket.Conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn
}

// Close closes the current connection, if any.
func (d *Dialer) Close() error {
	d.mu.Lock()
	conn := d.conn
	d.conn = nil
	d.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// EndpointURL maps an http(s) API base URL and a path onto the matching ws(s) URL.
func EndpointURL(apiBaseURL, path string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(apiBaseURL, "/") + path)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}
