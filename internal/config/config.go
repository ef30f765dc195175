package config

import "time"

type Config interface {
	EnvConfig
	SessionConfig
	StoreConfig
	CorsConfig
	TokenConfig
	DemoUserConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// SessionConfig holds what the client side session manager needs to reach the auth API.
type SessionConfig interface {
	GetAPIBaseURL() string
	GetAccessTokenKey() string
	GetEntryPage() string
	GetLoginPath() string
	GetRefreshPath() string
	GetLogoutPath() string
	GetHTTPTimeout() time.Duration
}

type StoreConfig interface {
	GetStoreDriver() string
	GetStorePath() string
	GetRedisAddr() string
	GetRedisPrefix() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Session
	Store
	Cors
	Token
	DemoUser
}

func New() Config {
	return mainConfig{}
}
