package session

import (
	"context"
	"fmt"
)

// ConnectFunc tries to open a connection authenticated with token. nil means connected.
type ConnectFunc func(ctx context.Context, token string) error

// ConnectWebSocket runs connect with the stored token and, if that fails, refreshes
// the token and runs it exactly once more. A failed refresh is reported but never
// ends the session: a rejected handshake alone does not prove the HTTP session is dead.
func (m *Manager) ConnectWebSocket(ctx context.Context, connect ConnectFunc) error {
	err := connect(ctx, m.accessToken(ctx))
	if err == nil {
		return nil
	}
	m.logger.Debug().Err(err).Msg("websocket connect failed, refreshing access token")

	result := m.Refresh(ctx)
	if !result.Succeeded() {
		m.logger.Warn().Err(result.Cause).Msg("websocket refresh failed, keeping session")
		return fmt.Errorf("%w: %w", ErrWebSocketRefreshFailed, err)
	}

	if err := connect(ctx, m.accessToken(ctx)); err != nil {
		return fmt.Errorf("%w: %w", ErrWebSocketConnect, err)
	}
	return nil
}
