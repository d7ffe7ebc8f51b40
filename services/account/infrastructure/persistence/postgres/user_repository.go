package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/sweetshop/pkg/database"
	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	"github.com/ghuser/sweetshop/services/account/domain/models"
)

const (
	insertUser = `INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`

	getUserByUsername = `SELECT id, username, password_hash, created_at
FROM users
WHERE lower(username) = lower($1)`
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given connection pool.
func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts u. Returns ErrUsernameTaken on unique constraint violations.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.DB().ExecContext(ctx, insertUser, u.ID, u.Username.String(), u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return accountdomain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user case-insensitively. Returns ErrUserNotFound if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		u    models.User
		name string
	)
	err := r.db.DB().QueryRowContext(ctx, getUserByUsername, username).
		Scan(&u.ID, &name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Username = models.Username(name)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
