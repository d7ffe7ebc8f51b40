package domain

import "errors"

// Sentinel errors for the account domain. Use errors.Is() to check these.
var (
	// ErrInvalidAccount indicates a username or password violates registration rules.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrUserNotFound indicates no user has the requested username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// Both cases share one error so callers cannot probe for usernames.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrTooManyAttempts indicates the username is locked out after repeated failures.
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")
)
