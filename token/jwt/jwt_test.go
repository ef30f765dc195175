package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-session-client/token"
	"github.com/jrsteele09/go-session-client/token/jwt"
	"github.com/jrsteele09/go-session-client/users"
	"github.com/stretchr/testify/require"
)

type tokenConfig struct{}

func (tokenConfig) GetIssuer() string                    { return "com.testissuer" }
func (tokenConfig) GetSigningSecret() string             { return "1234" }
func (tokenConfig) GetRefreshTokenLength() int           { return 32 }
func (tokenConfig) GetAccessTokenExpiry() time.Duration  { return 15 * time.Minute }
func (tokenConfig) GetRefreshTokenExpiry() time.Duration { return time.Hour }

var testUser = &users.User{ID: "user-1", Email: "john.doe@example.com"}

func TestCreateAndVerify(t *testing.T) {
	signer := token.NewHMACSigner("1234")
	creator := jwt.NewCreator(tokenConfig{}, signer)

	raw, err := creator.CreateAccessToken(testUser)
	require.NoError(t, err)

	claims, err := jwt.NewInspector(signer).Verify(*raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "john.doe@example.com", claims.Email)
	require.Equal(t, "com.testissuer", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	raw, err := jwt.NewCreator(tokenConfig{}, token.NewHMACSigner("other")).CreateAccessToken(testUser)
	require.NoError(t, err)

	_, err = jwt.NewInspector(token.NewHMACSigner("1234")).Verify(*raw)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer := token.NewHMACSigner("1234")
	jwt.NowTimeFunc = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := jwt.NewCreator(tokenConfig{}, signer).CreateAccessToken(testUser)
	jwt.NowTimeFunc = time.Now
	require.NoError(t, err)

	_, err = jwt.NewInspector(signer).Verify(*raw)
	require.Error(t, err)

	// still readable for diagnostics
	claims, err := jwt.ParseUnverified(*raw)
	require.NoError(t, err)
	require.True(t, claims.Expired(time.Now()))
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwt.NewInspector(token.NewHMACSigner("1234")).Verify(raw)
	require.Error(t, err)
}

func TestParseUnverifiedGarbage(t *testing.T) {
	_, err := jwt.ParseUnverified("")
	require.Error(t, err)
	_, err = jwt.ParseUnverified("not-a-jwt")
	require.Error(t, err)
}

func TestRandomSignersDiffer(t *testing.T) {
	a, err := token.NewRandomHMACSigner()
	require.NoError(t, err)
	b, err := token.NewRandomHMACSigner()
	require.NoError(t, err)

	raw, err := jwt.NewCreator(tokenConfig{}, a).CreateAccessToken(testUser)
	require.NoError(t, err)
	_, err = jwt.NewInspector(b).Verify(*raw)
	require.Error(t, err)
}
