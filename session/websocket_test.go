package session_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/jrsteele09/go-session-client/session"
	"github.com/stretchr/testify/require"
)

var errHandshake = errors.New("handshake rejected")

// fakeDialer accepts only the listed token and records every attempt.
type fakeDialer struct {
	mu       sync.Mutex
	accept   string
	attempts []string
}

func (d *fakeDialer) connect(_ context.Context, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts = append(d.attempts, token)
	if token == d.accept {
		return nil
	}
	return errHandshake
}

func TestConnectWebSocketFirstTry(t *testing.T) {
	f := setupFixture(t)
	f.storeToken(t, initialToken)
	d := &fakeDialer{accept: initialToken}

	require.NoError(t, f.manager.ConnectWebSocket(context.Background(), d.connect))
	require.Equal(t, []string{initialToken}, d.attempts)
	require.Zero(t, f.api.refreshCalls.Load())
}

func TestConnectWebSocketRefreshesAndRetries(t *testing.T) {
	f := setupFixture(t)
	f.storeToken(t, "expired-token")
	d := &fakeDialer{accept: refreshedToken}

	require.NoError(t, f.manager.ConnectWebSocket(context.Background(), d.connect))
	require.Equal(t, []string{"expired-token", refreshedToken}, d.attempts)
	require.EqualValues(t, 1, f.api.refreshCalls.Load())
}

func TestConnectWebSocketRefreshFailureKeepsSession(t *testing.T) {
	f := setupFixture(t)
	f.storeToken(t, "expired-token")
	f.api.set(func(a *fakeAPI) { a.refreshStatus = http.StatusUnauthorized })
	d := &fakeDialer{accept: refreshedToken}

	err := f.manager.ConnectWebSocket(context.Background(), d.connect)

	require.ErrorIs(t, err, session.ErrWebSocketRefreshFailed)
	require.ErrorIs(t, err, errHandshake)
	require.Len(t, d.attempts, 1)
	require.Zero(t, f.api.logoutCalls.Load())
	require.Zero(t, f.observer.terminated.Load())
	require.Empty(t, f.navigator.visited())
	require.Equal(t, "expired-token", f.storedToken(t))
}

func TestConnectWebSocketSecondAttemptFails(t *testing.T) {
	f := setupFixture(t)
	f.storeToken(t, "expired-token")
	d := &fakeDialer{accept: "never"}

	err := f.manager.ConnectWebSocket(context.Background(), d.connect)

	require.ErrorIs(t, err, session.ErrWebSocketConnect)
	require.ErrorIs(t, err, errHandshake)
	require.Equal(t, []string{"expired-token", refreshedToken}, d.attempts, "no third attempt")
	require.Empty(t, f.navigator.visited())
}

func TestConnectWebSocketWithoutToken(t *testing.T) {
	f := setupFixture(t)
	d := &fakeDialer{accept: refreshedToken}

	require.NoError(t, f.manager.ConnectWebSocket(context.Background(), d.connect))
	require.Equal(t, []string{"", refreshedToken}, d.attempts)
}
