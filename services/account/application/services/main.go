package services

import (
	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/services/account/domain/repositories"
	"github.com/ghuser/sweetshop/services/account/infrastructure/persistence/memory"
	"github.com/ghuser/sweetshop/services/account/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Account *AccountService
}

// New wires the account services with the store selected by STORAGE_BACKEND.
// Login throttling is enabled only when Redis is configured.
func New(a *app.Application) *Services {
	var users repositories.UserRepository
	if a.UsesPostgres() {
		users = postgres.NewUserRepository(a.Db)
	} else {
		users = memory.NewUserRepository()
	}

	var limiter LoginLimiter
	if a.Redis != nil {
		limiter = cache.NewLoginLimiter(a.Redis, a.Config.LoginMaxAttempts, a.Config.LoginLockoutWindow)
	}

	return &Services{
		Account: NewAccountService(users, a.Tokens, limiter, a.Config.PrivilegedUsernames(), a.Logger),
	}
}
