package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordBytes  = 8
	maxPasswordBytes  = 72 // bcrypt ignores anything longer
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Username is a value object for a login name: 3..50 letters, digits, '_' or '-'.
// Usernames compare case-insensitively; the original spelling is kept for display.
type Username string

// NewUsername constructs a valid Username or returns an error if constraints are violated.
func NewUsername(s string) (Username, error) {
	if n := len(s); n < minUsernameLength || n > maxUsernameLength {
		return "", fmt.Errorf("username must be %d to %d characters", minUsernameLength, maxUsernameLength)
	}
	if !usernamePattern.MatchString(s) {
		return "", errors.New("username may only contain letters, digits, '_' and '-'")
	}
	return Username(s), nil
}

// String returns the underlying string value.
func (u Username) String() string {
	return string(u)
}

// Key is the case-folded form used for uniqueness and lookups.
func (u Username) Key() string {
	return strings.ToLower(string(u))
}

// ValidatePassword checks the length rules for a new password.
func ValidatePassword(p string) error {
	if n := len(p); n < minPasswordBytes || n > maxPasswordBytes {
		return fmt.Errorf("password must be %d to %d bytes", minPasswordBytes, maxPasswordBytes)
	}
	return nil
}

// User is a registered account holder.
type User struct {
	ID           uuid.UUID
	Username     Username
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a User with a fresh ID for an already hashed password.
func NewUser(username Username, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
