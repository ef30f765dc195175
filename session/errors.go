package session

import "github.com/jrsteele09/go-session-client/internal/errors"

// Errors surfaced by the Manager. Match them with errors.Is.
var (
	// ErrUnauthorized is returned by Do once the session has been terminated.
	// The caller must stop using the session; retrying will not help.
	ErrUnauthorized = errors.ErrUnauthorized

	ErrNoToken                = errors.ErrNoToken
	ErrRefreshRejected        = errors.ErrRefreshRejected
	ErrInvalidTokenResponse   = errors.ErrInvalidTokenResponse
	ErrLoginRejected          = errors.ErrLoginRejected
	ErrWebSocketConnect       = errors.ErrWebSocketConnect
	ErrWebSocketRefreshFailed = errors.ErrWebSocketRefreshFailed
)

// StatusError carries the status code an auth endpoint answered with.
type StatusError = errors.StatusError
