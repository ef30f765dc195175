package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-session-client/users"
)

// InitialiseSystem seeds the demo user so the server can be logged into straight away.
// Returns the generated password on first creation (empty string if it was configured or already exists)
func (s *Server) InitialiseSystem(ctx context.Context) (generatedPassword string, err error) {
	email := strings.ToLower(s.config.GetDemoUserEmail())
	if existing, err := s.repos.Users.GetByEmail(email); err == nil && existing != nil {
		s.logger.Info().Str("email", email).Msg("bootstrap: demo user already exists")
		return "", nil
	}

	password := s.config.GetDemoUserPassword()
	if password == "" {
		generatedPassword = generateRandomString(12)
		password = generatedPassword
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash demo user password: %w", err)
	}
	if err := s.repos.Users.Upsert(&users.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Demo User",
	}); err != nil {
		return "", fmt.Errorf("failed to create demo user: %w", err)
	}

	event := s.logger.Info().Str("email", email)
	if generatedPassword != "" {
		// shown once so the developer can log in
		event = event.Str("password", generatedPassword)
	}
	event.Msg("bootstrap: demo user created")
	return generatedPassword, nil
}

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
