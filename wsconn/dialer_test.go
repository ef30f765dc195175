package wsconn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/jrsteele09/go-session-client/wsconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const goodToken = "good-token"

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(authapi.TokenQueryParam) != goodToken ||
			r.Header.Get("Authorization") != "Bearer "+goodToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newDialer(t *testing.T, srv *httptest.Server) *wsconn.Dialer {
	t.Helper()
	endpoint, err := wsconn.EndpointURL(srv.URL, authapi.RouteWebSocket)
	require.NoError(t, err)
	d, err := wsconn.NewDialer(endpoint, wsconn.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestConnectAndEcho(t *testing.T) {
	d := newDialer(t, newEchoServer(t))

	require.NoError(t, d.Connect(context.Background(), goodToken))
	conn := d.Conn()
	require.NotNil(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "ping", string(msg))
}

func TestConnectRejectedToken(t *testing.T) {
	d := newDialer(t, newEchoServer(t))

	err := d.Connect(context.Background(), "stale")

	var statusErr *errors.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotContains(t, err.Error(), "stale")
	require.Nil(t, d.Conn())
}

func TestConnectReplacesPreviousConnection(t *testing.T) {
	d := newDialer(t, newEchoServer(t))

	require.NoError(t, d.Connect(context.Background(), goodToken))
	first := d.Conn()
	require.NoError(t, d.Connect(context.Background(), goodToken))
	require.NotSame(t, first, d.Conn())

	_, _, err := first.ReadMessage()
	require.Error(t, err, "the replaced connection is closed")
}

func TestConnectUnreachable(t *testing.T) {
	srv := newEchoServer(t)
	d := newDialer(t, srv)
	srv.Close()

	err := d.Connect(context.Background(), goodToken)
	require.Error(t, err)
	require.NotContains(t, err.Error(), goodToken)
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base, want string
		wantErr    bool
	}{
		{base: "http://localhost:8080", want: "ws://localhost:8080/ws"},
		{base: "https://api.example.com/", want: "wss://api.example.com/ws"},
		{base: "ws://localhost:8080", want: "ws://localhost:8080/ws"},
		{base: "ftp://example.com", wantErr: true},
	}
	for _, tt := range tests {
		got, err := wsconn.EndpointURL(tt.base, "/ws")
		if tt.wantErr {
			require.Error(t, err, tt.base)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestNewDialerRejectsHTTP(t *testing.T) {
	_, err := wsconn.NewDialer("http://localhost:8080/ws")
	require.Error(t, err)
}
