package session

import (
	"context"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/token/jwt"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Manager)(nil)

// Token returns the stored access token. It satisfies oauth2.TokenSource but never refreshes;
// refreshing is driven by 401 answers through Do.
func (m *Manager) Token() (*oauth2.Token, error) {
	token := m.accessToken(context.Background())
	if token == "" {
		return nil, ErrNoToken
	}

	t := &oauth2.Token{AccessToken: token, TokenType: authapi.BearerScheme}
	if claims, err := jwt.ParseUnverified(token); err == nil {
		t.Expiry = claims.ExpiresAt
	}
	return t, nil
}

// Authenticated reports whether an access token is stored.
func (m *Manager) Authenticated(ctx context.Context) bool {
	return m.accessToken(ctx) != ""
}

// Claims decodes the stored access token without verifying it.
func (m *Manager) Claims(ctx context.Context) (*jwt.Claims, error) {
	token := m.accessToken(ctx)
	if token == "" {
		return nil, ErrNoToken
	}
	return jwt.ParseUnverified(token)
}
