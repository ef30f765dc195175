package refresh_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/jrsteele09/go-session-client/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-session-client/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

type tokenConfig struct{}

func (tokenConfig) GetIssuer() string                    { return "test" }
func (tokenConfig) GetSigningSecret() string             { return "" }
func (tokenConfig) GetRefreshTokenLength() int           { return 16 }
func (tokenConfig) GetAccessTokenExpiry() time.Duration  { return time.Minute }
func (tokenConfig) GetRefreshTokenExpiry() time.Duration { return time.Hour }

func TestCreateReplacesExisting(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), tokenConfig{})

	first, err := m.Create("user-1")
	require.NoError(t, err)
	require.Len(t, *first, 32)

	second, err := m.Create("user-1")
	require.NoError(t, err)
	require.NotEqual(t, *first, *second)

	_, err = m.Get(*first)
	require.Error(t, err, "single refresh token per user")
	_, err = m.Get(*second)
	require.NoError(t, err)
}

func TestRotate(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), tokenConfig{})
	original, err := m.Create("user-1")
	require.NoError(t, err)

	rotated, userID, err := m.Rotate(*original)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
	require.NotEqual(t, *original, *rotated)

	_, _, err = m.Rotate(*original)
	require.ErrorIs(t, err, errors.ErrInvalidRefreshToken, "rotated token is single use")
}

func TestRotateExpired(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), tokenConfig{})

	refresh.NowTimeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := m.Create("user-1")
	refresh.NowTimeFunc = time.Now
	require.NoError(t, err)

	_, _, err = m.Rotate(*stale)
	require.ErrorIs(t, err, errors.ErrRefreshTokenExpired)

	_, err = m.Get(*stale)
	require.Error(t, err, "expired token is removed")
}

func TestDelete(t *testing.T) {
	m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), tokenConfig{})
	tok, err := m.Create("user-1")
	require.NoError(t, err)

	require.NoError(t, m.Delete(*tok))
	require.Error(t, m.Delete(*tok))
	_, _, err = m.Rotate(*tok)
	require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
}
