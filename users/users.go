package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account known to the development auth server.
type User struct {
	ID           string    `json:"id,omitempty"`          // Unique identifier for the user
	Email        string    `json:"email,omitempty"`       // User's email address, the login name
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	DisplayName  string    `json:"displayName,omitempty"` // Name shown by the front end
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin    time.Time `json:"last_login,omitempty"`  // Last time the user logged in
	Blocked      bool      `json:"blocked,omitempty"`     // Blocked, has the user been blocked from logging in
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword reports whether password matches the user's stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
