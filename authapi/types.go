package authapi

const (
	// RefreshCookieName is the HttpOnly cookie holding the opaque refresh token.
	// Set by: POST /api/v1/auth/login and POST /api/v1/auth/refresh
	// Cleared by: POST /api/v1/auth/logout (Max-Age=0)
	// The client never reads it; the cookie jar sends it back on the auth routes.
	RefreshCookieName = "refresh_token"

	// RefreshCookiePath scopes the refresh cookie to the auth routes only.
	RefreshCookiePath = "/api/v1/auth/"

	// TokenQueryParam carries the access token on WebSocket handshakes.
	// Example: wss://api.example.com/ws?token=eyJhbGciOi...
	// Browsers cannot set headers on a WebSocket handshake, so the server reads the query instead.
	TokenQueryParam = "token"

	// BearerScheme is the Authorization scheme used for access tokens.
	BearerScheme = "Bearer"
)

// TokenResponse is the body returned by the login and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the short lived JWT sent as "Authorization: Bearer <accessToken>".
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Lifespan: minutes; renewed through POST /api/v1/auth/refresh
	AccessToken string `json:"accessToken"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse is the JSON error body produced by the auth server.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// MeResponse is returned by GET /api/v1/users/me.
type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
