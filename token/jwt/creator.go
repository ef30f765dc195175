package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/jrsteele09/go-session-client/token"
	"github.com/jrsteele09/go-session-client/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator handles access token creation
type Creator struct {
	config config.TokenConfig
	signer token.Signer
	now    func() time.Time
}

// NewCreator creates a new JWT creator
func NewCreator(cfg config.TokenConfig, signer token.Signer) *Creator {
	return &Creator{
		config: cfg,
		signer: signer,
		now:    func() time.Time { return NowTimeFunc() },
	}
}

// CreateAccessToken creates a short lived bearer access token for the user
func (c *Creator) CreateAccessToken(user *users.User) (*string, error) {
	now := c.now()
	claims := jwtlib.MapClaims{
		"iss":   c.config.GetIssuer(),                            // The issuer of the token
		"sub":   user.ID,                                         // The user the token was issued to
		"email": user.Email,                                      // Login name, handy for the front end
		"iat":   now.Unix(),                                      // Issued At: the time at which the token was issued
		"exp":   now.Add(c.config.GetAccessTokenExpiry()).Unix(), // Expiry: when the token will expire
		"jti":   uuid.New().String(),                             // Unique token ID
	}

	signedToken, err := c.signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return &signedToken, nil
}

// SetClock replaces the time source used for iat and exp.
func (c *Creator) SetClock(now func() time.Time) {
	c.now = now
}
