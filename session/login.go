package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/errors"
)

// Login exchanges credentials for an access token, which is stored, and a refresh
// cookie, which lands in the cookie jar.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(authapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return errors.Wrapf(err, "[session Login] encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(m.config.GetLoginPath()), bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "[session Login] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[session Login] request")
	}
	defer closeBody(res)

	if !isSuccess(res.StatusCode) {
		m.logger.Info().Str("email", email).Int("status", res.StatusCode).Msg("login rejected")
		return &errors.StatusError{
			Endpoint:   m.config.GetLoginPath(),
			StatusCode: res.StatusCode,
			Err:        errors.ErrLoginRejected,
		}
	}

	token, err := decodeToken(res)
	if err != nil {
		return errors.Wrapf(err, "[session Login]")
	}
	if err := m.setAccessToken(ctx, token); err != nil {
		return errors.Wrapf(err, "[session Login] store access token")
	}

	m.logClaims(token, "logged in")
	return nil
}
