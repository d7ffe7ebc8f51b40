package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const accountKey contextKey = "account"

var (
	// ErrUnauthenticated is returned when the caller presented no valid credentials.
	// Handlers should return 401 when this error occurs.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when an authenticated caller lacks the required privilege.
	ErrForbidden = errors.New("not enough privileges")
)

// Account is the verified identity of a caller, as carried in its bearer token.
type Account struct {
	SubjectID    uuid.UUID
	Username     string
	IsPrivileged bool
}

// AccountFromCtx extracts the authenticated Account from the request context.
// Returns ErrUnauthenticated if no Account is set or its subject is uuid.Nil.
func AccountFromCtx(ctx context.Context) (Account, error) {
	acc, ok := ctx.Value(accountKey).(Account)
	if !ok || acc.SubjectID == uuid.Nil {
		return Account{}, ErrUnauthenticated
	}
	return acc, nil
}

// PrivilegedFromCtx is AccountFromCtx plus a privilege check.
// Returns ErrForbidden for authenticated but unprivileged callers.
func PrivilegedFromCtx(ctx context.Context) (Account, error) {
	acc, err := AccountFromCtx(ctx)
	if err != nil {
		return Account{}, err
	}
	if !acc.IsPrivileged {
		return Account{}, ErrForbidden
	}
	return acc, nil
}

// WithAccount returns a new context with the given Account attached.
// Used by authentication middleware after verifying the bearer token.
func WithAccount(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, accountKey, acc)
}
