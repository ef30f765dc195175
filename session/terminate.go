package session

import (
	"context"
	"fmt"
	"net/http"
)

// Terminate ends the local session. The server is notified on a best-effort
// basis, then the store is cleared and the navigator sent to the entry page.
// The last two steps always run, whatever happened before, and nothing is
// reported back to the caller.
func (m *Manager) Terminate(ctx context.Context) {
	// cleanup must not be cut short by a caller that already gave up
	ctx = context.WithoutCancel(ctx)
	m.observer.SessionTerminated()

	defer func() {
		m.clearStore(ctx)
		page := m.config.GetEntryPage()
		if err := m.navigator.Navigate(ctx, page); err != nil {
			m.logger.Warn().Err(err).Str("page", page).Msg("failed to navigate to entry page")
		}
	}()

	m.notifyLogout(ctx)
}

func (m *Manager) clearStore(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("clearing session store panicked")
		}
	}()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear session store")
	}
}

func (m *Manager) notifyLogout(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("logout notification panicked")
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(m.config.GetLogoutPath()), nil)
	if err != nil {
		m.logger.Debug().Err(err).Msg("failed to build logout request")
		return
	}

	res, err := m.client.Do(req)
	if err != nil {
		m.logger.Debug().Err(err).Msg("logout notification failed")
		return
	}
	defer closeBody(res)

	if !isSuccess(res.StatusCode) {
		m.logger.Debug().Int("status", res.StatusCode).Msg("logout notification rejected")
	}
}
