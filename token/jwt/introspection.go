package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-session-client/token"
)

// Claims is the subset of access token claims the client and server care about.
type Claims struct {
	Subject   string
	Email     string
	Issuer    string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims are past their expiry at now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseUnverified decodes the token claims without checking the signature.
// Clients use it for diagnostics only; the server remains the authority.
func ParseUnverified(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("empty token")
	}
	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	mapClaims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}
	return claimsFromMap(mapClaims), nil
}

// Inspector verifies access tokens issued by Creator
type Inspector struct {
	signer token.Signer
	now    func() time.Time
}

// NewInspector creates a new JWT inspector
func NewInspector(signer token.Signer) *Inspector {
	return &Inspector{
		signer: signer,
		now:    func() time.Time { return NowTimeFunc() },
	}
}

// Verify checks signature, signing method and expiry and returns the claims
func (i *Inspector) Verify(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("empty token")
	}

	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(i.now),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims from token")
	}

	claims := claimsFromMap(mapClaims)
	if claims.Subject == "" {
		return nil, errors.New("token missing sub claim")
	}
	return claims, nil
}

func claimsFromMap(m jwtlib.MapClaims) *Claims {
	sub, _ := m["sub"].(string)
	email, _ := m["email"].(string)
	iss, _ := m["iss"].(string)
	jti, _ := m["jti"].(string)

	c := &Claims{Subject: sub, Email: email, Issuer: iss, ID: jti}
	if iat, err := m.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

// SetClock replaces the time source used for expiry checks.
func (i *Inspector) SetClock(now func() time.Time) {
	i.now = now
}
