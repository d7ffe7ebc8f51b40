package app

import (
	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/pkg/config"
	"github.com/ghuser/sweetshop/pkg/database"
	"github.com/ghuser/sweetshop/pkg/events"
	"github.com/ghuser/sweetshop/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's New and Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "sweet purchased", "sweet_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database // nil when STORAGE_BACKEND=memory
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
	Tally    cache.Tally        // Redis-backed when Redis is configured, in-process otherwise
	Tokens   *auth.TokenService
}

// UsesPostgres reports whether repositories should be backed by PostgreSQL.
func (a *Application) UsesPostgres() bool {
	return a.Config.StorageBackend == config.StoragePostgres
}

// IsProduction reports whether the process runs with ENVIRONMENT=production.
func (a *Application) IsProduction() bool {
	return a.Config.Environment == config.EnvProduction
}
