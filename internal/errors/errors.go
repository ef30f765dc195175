package errors

import (
	"errors"
	"fmt"
)

// Common error types for the session client and the development auth server
var (
	// Session errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("no access token")

	// Refresh errors
	ErrRefreshRejected      = errors.New("refresh rejected")
	ErrInvalidTokenResponse = errors.New("invalid token response")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	// Login errors
	ErrLoginRejected      = errors.New("login rejected")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// WebSocket errors
	ErrWebSocketConnect       = errors.New("websocket connect failed")
	ErrWebSocketRefreshFailed = errors.New("websocket refresh failed")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// StatusError records the HTTP status an auth endpoint answered with.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", e.Err, e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
