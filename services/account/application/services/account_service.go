package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/logger"
	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	"github.com/ghuser/sweetshop/services/account/domain/models"
	"github.com/ghuser/sweetshop/services/account/domain/repositories"
)

// LoginLimiter throttles repeated failed logins. *cache.LoginLimiter satisfies it.
type LoginLimiter interface {
	Blocked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// TokenIssuer signs access tokens. *auth.TokenService satisfies it.
type TokenIssuer interface {
	Issue(acc auth.Account) (string, time.Time, error)
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// AccountService registers users and exchanges credentials for access tokens.
type AccountService struct {
	users      repositories.UserRepository
	tokens     TokenIssuer
	limiter    LoginLimiter // nil disables throttling
	privileged []string     // lower-cased usernames
	log        logger.Logger
}

// NewAccountService returns an AccountService. Users named in privileged
// receive privileged tokens; a nil limiter disables login throttling.
func NewAccountService(users repositories.UserRepository, tokens TokenIssuer, limiter LoginLimiter, privileged []string, log logger.Logger) *AccountService {
	return &AccountService{
		users:      users,
		tokens:     tokens,
		limiter:    limiter,
		privileged: privileged,
		log:        log,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.User, error) {
	name, err := models.NewUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrInvalidAccount, err)
	}
	if err := models.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrInvalidAccount, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := models.NewUser(name, hash)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and issues an access token.
// Unknown usernames and wrong passwords both fail with ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	username = strings.TrimSpace(username)
	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, username)
		if err != nil {
			s.log.WarnContext(ctx, "login limiter unavailable", "error", err)
		}
		if blocked {
			return AccessToken{}, accountdomain.ErrTooManyAttempts
		}
	}

	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, accountdomain.ErrUserNotFound):
		return AccessToken{}, s.failed(ctx, username)
	case err != nil:
		return AccessToken{}, err
	}
	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return AccessToken{}, s.failed(ctx, username)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.WarnContext(ctx, "login limiter reset failed", "error", err)
		}
	}

	token, exp, err := s.tokens.Issue(auth.Account{
		SubjectID:    u.ID,
		Username:     u.Username.String(),
		IsPrivileged: slices.Contains(s.privileged, u.Username.Key()),
	})
	if err != nil {
		return AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return AccessToken{Token: token, ExpiresAt: exp}, nil
}

// failed records a failed attempt and returns ErrInvalidCredentials.
func (s *AccountService) failed(ctx context.Context, username string) error {
	if s.limiter != nil {
		if err := s.limiter.Fail(ctx, username); err != nil {
			s.log.WarnContext(ctx, "login limiter update failed", "error", err)
		}
	}
	return accountdomain.ErrInvalidCredentials
}
