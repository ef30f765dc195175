package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/errors"
	"golang.org/x/oauth2"
)

type sendFunc func(*http.Request) (*http.Response, error)

// Do sends req with the stored access token. A 401 answer triggers one refresh and,
// if that succeeds, one retry with the new token. When the answer is still 401, or
// the refresh failed, the session is terminated and ErrUnauthorized returned.
// Any other response, 403 and 5xx included, is handed back untouched.
func (m *Manager) Do(req *http.Request) (*http.Response, error) {
	return m.roundTrip(req, m.client.Do)
}

// Fetch builds a request and sends it through Do. Targets without a scheme are
// resolved against the API base URL.
func (m *Manager) Fetch(ctx context.Context, method, target string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, m.resolve(target), body)
	if err != nil {
		return nil, errors.Wrapf(err, "[session Fetch] build request")
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return m.Do(req)
}

// Client returns an http.Client whose requests go through the same token handling as Do.
func (m *Manager) Client() *http.Client {
	return &http.Client{
		Transport: &Transport{Manager: m, Base: m.client.Transport},
		Jar:       m.client.Jar,
		Timeout:   m.client.Timeout,
	}
}

// Transport is an http.RoundTripper applying a Manager's token handling.
type Transport struct {
	Manager *Manager
	// Base performs the actual round trips; http.DefaultTransport when nil
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return t.Manager.roundTrip(req, base.RoundTrip)
}

func (m *Manager) roundTrip(req *http.Request, send sendFunc) (*http.Response, error) {
	ctx := req.Context()

	first, err := replayable(req)
	if err != nil {
		return nil, err
	}

	res, err := send(m.authorize(ctx, first))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusUnauthorized {
		return res, nil
	}
	closeBody(res)

	result := m.Refresh(ctx)
	if result.Succeeded() {
		retry, err := rewind(first)
		if err != nil {
			return nil, err
		}
		m.observer.RequestRetried()

		res, err = send(m.authorize(ctx, retry))
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusUnauthorized {
			return res, nil
		}
		closeBody(res)
	} else if ctx.Err() != nil {
		// the caller gave up; that says nothing about the session
		return nil, ctx.Err()
	}

	m.logger.Warn().
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Str("refresh", result.Outcome.String()).
		Msg("definitive unauthorized, terminating session")
	m.Terminate(ctx)
	return nil, ErrUnauthorized
}

// authorize sets the bearer header from the store. Without a token the header is omitted.
func (m *Manager) authorize(ctx context.Context, req *http.Request) *http.Request {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Del("Authorization")
	if token := m.accessToken(ctx); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: authapi.BearerScheme}).SetAuthHeader(req)
	}
	return req
}

func (m *Manager) resolve(target string) string {
	if u, err := url.Parse(target); err != nil || u.IsAbs() {
		return target
	}
	return m.config.GetAPIBaseURL() + "/" + strings.TrimLeft(target, "/")
}

// replayable clones req, buffering a body that cannot be re-read so a retry can send it again.
func replayable(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if out.Body == nil || out.Body == http.NoBody || out.GetBody != nil {
		return out, nil
	}

	data, err := io.ReadAll(out.Body)
	out.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("[session] read request body: %w", err)
	}
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	out.Body, _ = out.GetBody()
	out.ContentLength = int64(len(data))
	return out, nil
}

// rewind returns a copy of req with a fresh body.
func rewind(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.GetBody == nil {
		return out, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("[session] rewind request body: %w", err)
	}
	out.Body = body
	return out, nil
}
