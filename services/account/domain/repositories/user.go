package repositories

import (
	"context"

	"github.com/ghuser/sweetshop/services/account/domain/models"
)

// UserRepository stores registered users.
// Usernames are unique case-insensitively.
type UserRepository interface {
	// Create stores u. Returns ErrUsernameTaken if the username is already registered.
	Create(ctx context.Context, u *models.User) error
	// GetByUsername looks a user up case-insensitively. Returns ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
