package config

import "time"

// TokenConfig drives token issuance in the development auth server.
type TokenConfig interface {
	GetIssuer() string
	GetSigningSecret() string
	GetRefreshTokenLength() int
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetIssuer() string {
	return GetEnv("TOKEN_ISSUER", "session-dev-server")
}

// GetSigningSecret returns the HMAC secret. Empty means the server generates one at startup.
func (Token) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "")
}

func (Token) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

func (Token) GetAccessTokenExpiry() time.Duration {
	return GetEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute)
}

func (Token) GetRefreshTokenExpiry() time.Duration {
	return GetEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour) // 7 days
}
