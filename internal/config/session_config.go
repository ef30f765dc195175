package config

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-session-client/authapi"
)

const (
	apiBaseURLVar     = "API_BASE_URL"
	accessTokenKeyVar = "ACCESS_TOKEN_KEY"
	entryPageVar      = "ENTRY_PAGE"
	httpTimeoutVar    = "HTTP_TIMEOUT"

	// DefaultAccessTokenKey is the storage key the access token lives under.
	DefaultAccessTokenKey = "accessToken"
	// DefaultEntryPage is where a forced logout navigates to.
	DefaultEntryPage = "index.html"

	LoginPath   = authapi.RouteLogin
	RefreshPath = authapi.RouteRefresh
	LogoutPath  = authapi.RouteLogout
)

type Session struct{}

var _ SessionConfig = Session{}

// GetAPIBaseURL returns the API base URL without a trailing slash (e.g., "https://api.example.com")
func (Session) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8080"), "/")
}

func (Session) GetAccessTokenKey() string {
	return GetEnv(accessTokenKeyVar, DefaultAccessTokenKey)
}

func (Session) GetEntryPage() string {
	return GetEnv(entryPageVar, DefaultEntryPage)
}

func (Session) GetLoginPath() string {
	return LoginPath
}

func (Session) GetRefreshPath() string {
	return RefreshPath
}

func (Session) GetLogoutPath() string {
	return LogoutPath
}

// GetHTTPTimeout is zero unless configured; the session manager imposes no timeout of its own.
func (Session) GetHTTPTimeout() time.Duration {
	return GetEnvDuration(httpTimeoutVar, 0)
}
