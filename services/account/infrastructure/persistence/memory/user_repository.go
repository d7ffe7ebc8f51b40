package memory

import (
	"context"
	"strings"
	"sync"

	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	"github.com/ghuser/sweetshop/services/account/domain/models"
)

// UserRepository implements repositories.UserRepository in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by Username.Key()
}

// NewUserRepository returns an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

// Create stores u unless its username is taken.
func (r *UserRepository) Create(_ context.Context, u *models.User) error {
	key := u.Username.Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[key]; ok {
		return accountdomain.ErrUsernameTaken
	}
	r.users[key] = *u
	return nil
}

// GetByUsername returns a copy of the stored user.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	u, ok := r.users[strings.ToLower(username)]
	r.mu.RUnlock()
	if !ok {
		return nil, accountdomain.ErrUserNotFound
	}
	return &u, nil
}
