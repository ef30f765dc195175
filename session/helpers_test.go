package session_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/jrsteele09/go-session-client/session"
	"github.com/jrsteele09/go-session-client/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	initialToken   = "initial-token"
	refreshedToken = "refreshed-token"
	refreshCookie  = "refresh-cookie-value"
	resourcePath   = "/api/v1/data"
)

type testConfig struct {
	baseURL string
}

var _ config.SessionConfig = testConfig{}

func (c testConfig) GetAPIBaseURL() string         { return c.baseURL }
func (c testConfig) GetAccessTokenKey() string     { return config.DefaultAccessTokenKey }
func (c testConfig) GetEntryPage() string          { return config.DefaultEntryPage }
func (c testConfig) GetLoginPath() string          { return authapi.RouteLogin }
func (c testConfig) GetRefreshPath() string        { return authapi.RouteRefresh }
func (c testConfig) GetLogoutPath() string         { return authapi.RouteLogout }
func (c testConfig) GetHTTPTimeout() time.Duration { return 0 }

// fakeAPI is a minimal auth API: a bearer protected resource plus refresh, logout and login.
type fakeAPI struct {
	server *httptest.Server

	mu            sync.Mutex
	validToken    string
	refreshStatus int
	refreshBody   string
	// rejectAll makes the resource answer 401 whatever the token
	rejectAll bool
	// resourceStatus overrides the answer to an authorised request
	resourceStatus int
	refreshGate    chan struct{}
	lastAuthHeader []string

	refreshCalls  atomic.Int32
	logoutCalls   atomic.Int32
	resourceCalls atomic.Int32
	refreshCookie atomic.Value // string seen on the last refresh call
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		validToken:    initialToken,
		refreshStatus: http.StatusOK,
		refreshBody:   `{"accessToken":"` + refreshedToken + `"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+authapi.RouteRefresh, api.handleRefresh)
	mux.HandleFunc("POST "+authapi.RouteLogout, func(w http.ResponseWriter, r *http.Request) {
		api.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST "+authapi.RouteLogin, api.handleLogin)
	mux.HandleFunc(resourcePath, api.handleResource)

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	a.refreshCalls.Add(1)
	if c, err := r.Cookie(authapi.RefreshCookieName); err == nil {
		a.refreshCookie.Store(c.Value)
	}

	a.mu.Lock()
	gate := a.refreshGate
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.refreshStatus != http.StatusOK {
		w.WriteHeader(a.refreshStatus)
		return
	}
	var body authapi.TokenResponse
	if json.Unmarshal([]byte(a.refreshBody), &body) == nil && body.AccessToken != "" {
		a.validToken = body.AccessToken
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, a.refreshBody)
}

func (a *fakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "password123" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authapi.RefreshCookieName,
		Value:    refreshCookie,
		Path:     authapi.RefreshCookiePath,
		HttpOnly: true,
	})
	json.NewEncoder(w).Encode(authapi.TokenResponse{AccessToken: initialToken})
}

func (a *fakeAPI) handleResource(w http.ResponseWriter, r *http.Request) {
	a.resourceCalls.Add(1)

	a.mu.Lock()
	a.lastAuthHeader = r.Header.Values("Authorization")
	valid := "Bearer " + a.validToken
	rejectAll := a.rejectAll
	status := a.resourceStatus
	a.mu.Unlock()

	if rejectAll || r.Header.Get("Authorization") != valid {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("X-Body", string(body))
	io.WriteString(w, "ok")
}

func (a *fakeAPI) set(fn func(a *fakeAPI)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a)
}

func (a *fakeAPI) authHeaders() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastAuthHeader
}

func (a *fakeAPI) url(path string) string {
	return a.server.URL + path
}

type recordingNavigator struct {
	mu    sync.Mutex
	pages []string
}

func (n *recordingNavigator) Navigate(_ context.Context, page string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages = append(n.pages, page)
	return nil
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.pages...)
}

type countingObserver struct {
	started, succeeded, failed, retried, terminated atomic.Int32
}

func (o *countingObserver) RefreshStarted() { o.started.Add(1) }
func (o *countingObserver) RefreshFinished(outcome session.RefreshOutcome, _ time.Duration) {
	if outcome == session.RefreshSucceeded {
		o.succeeded.Add(1)
		return
	}
	o.failed.Add(1)
}
func (o *countingObserver) RequestRetried()    { o.retried.Add(1) }
func (o *countingObserver) SessionTerminated() { o.terminated.Add(1) }

type fixture struct {
	api       *fakeAPI
	store     *storage.MemoryStore
	navigator *recordingNavigator
	observer  *countingObserver
	manager   *session.Manager
}

func setupFixture(t *testing.T, opts ...session.Option) *fixture {
	t.Helper()
	f := &fixture{
		api:       newFakeAPI(t),
		store:     storage.NewMemoryStore(),
		navigator: &recordingNavigator{},
		observer:  &countingObserver{},
	}
	opts = append([]session.Option{
		session.WithNavigator(f.navigator),
		session.WithObserver(f.observer),
		session.WithLogger(zerolog.Nop()),
	}, opts...)

	m, err := session.New(testConfig{baseURL: f.api.server.URL}, f.store, opts...)
	require.NoError(t, err)
	f.manager = m
	return f
}

func (f *fixture) storeToken(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, f.store.Set(context.Background(), config.DefaultAccessTokenKey, token))
}

func (f *fixture) storedToken(t *testing.T) string {
	t.Helper()
	v, err := f.store.Get(context.Background(), config.DefaultAccessTokenKey)
	if err != nil {
		return ""
	}
	return v
}

func (f *fixture) get(t *testing.T) (*http.Response, error) {
	t.Helper()
	return f.manager.Fetch(context.Background(), http.MethodGet, resourcePath, nil, nil)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

const (
	timeout = time.Second
	tick    = time.Millisecond
)
