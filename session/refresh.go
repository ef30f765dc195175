package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/errors"
	"github.com/jrsteele09/go-session-client/token/jwt"
)

const refreshKey = "refresh"

// RefreshOutcome is the result of a refresh attempt. A failed refresh is not an error:
// callers decide what it means (logout for requests, nothing for WebSockets).
type RefreshOutcome int

const (
	RefreshFailed RefreshOutcome = iota
	RefreshSucceeded
)

func (o RefreshOutcome) String() string {
	if o == RefreshSucceeded {
		return "succeeded"
	}
	return "failed"
}

// RefreshResult is shared by every caller that waited on the same refresh.
type RefreshResult struct {
	Outcome RefreshOutcome
	// Cause says why a refresh failed; nil on success
	Cause error
}

func (r RefreshResult) Succeeded() bool {
	return r.Outcome == RefreshSucceeded
}

func refreshFailed(cause error) RefreshResult {
	return RefreshResult{Outcome: RefreshFailed, Cause: cause}
}

// Refresh obtains a new access token through the refresh cookie. While a refresh is
// in flight, further callers wait for it and receive its result instead of starting another.
// The network call runs detached from the first caller's cancellation; a caller whose
// ctx ends while waiting gets a failed result carrying ctx.Err(). A caller whose
// ctx has already ended starts nothing.
func (m *Manager) Refresh(ctx context.Context) RefreshResult {
	if err := ctx.Err(); err != nil {
		return refreshFailed(err)
	}

	ch := m.refreshGroup.DoChan(refreshKey, func() (any, error) {
		return m.refresh(context.WithoutCancel(ctx)), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.logger.Debug().Msg("joined in-flight refresh")
		}
		return res.Val.(RefreshResult)
	case <-ctx.Done():
		return refreshFailed(ctx.Err())
	}
}

func (m *Manager) refresh(ctx context.Context) RefreshResult {
	start := time.Now()
	m.observer.RefreshStarted()

	result := m.requestRefresh(ctx)

	m.observer.RefreshFinished(result.Outcome, time.Since(start))
	if !result.Succeeded() {
		m.logger.Debug().Err(result.Cause).Msg("access token refresh failed")
	}
	return result
}

func (m *Manager) requestRefresh(ctx context.Context) RefreshResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(m.config.GetRefreshPath()), nil)
	if err != nil {
		return refreshFailed(err)
	}

	res, err := m.client.Do(req)
	if err != nil {
		return refreshFailed(errors.Wrapf(err, "refresh request"))
	}
	defer closeBody(res)

	if !isSuccess(res.StatusCode) {
		return refreshFailed(&errors.StatusError{
			Endpoint:   m.config.GetRefreshPath(),
			StatusCode: res.StatusCode,
			Err:        errors.ErrRefreshRejected,
		})
	}

	token, err := decodeToken(res)
	if err != nil {
		return refreshFailed(err)
	}
	if err := m.setAccessToken(ctx, token); err != nil {
		return refreshFailed(errors.Wrapf(err, "store refreshed access token"))
	}

	m.logClaims(token, "access token refreshed")
	return RefreshResult{Outcome: RefreshSucceeded}
}

// decodeToken reads the accessToken field of a login or refresh response.
func decodeToken(res *http.Response) (string, error) {
	var body authapi.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty accessToken", errors.ErrInvalidTokenResponse)
	}
	return body.AccessToken, nil
}

func (m *Manager) logClaims(token, msg string) {
	claims, err := jwt.ParseUnverified(token)
	if err != nil {
		m.logger.Debug().Msg(msg)
		return
	}
	m.logger.Debug().Str("sub", claims.Subject).Time("exp", claims.ExpiresAt).Msg(msg)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// closeBody drains what is left so the connection can be reused.
func closeBody(res *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
	res.Body.Close()
}
