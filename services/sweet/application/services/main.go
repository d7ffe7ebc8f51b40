package services

import (
	"fmt"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/services/sweet/domain/repositories"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/persistence/memory"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sweet *SweetService

	close func() error
}

// New wires the sweet services with the store selected by STORAGE_BACKEND.
// Call Close on shutdown so the memory store can flush its snapshot.
func New(a *app.Application) (*Services, error) {
	tally := a.Tally
	if tally == nil {
		tally = cache.NewLocalTally()
	}

	if a.UsesPostgres() {
		repo := postgres.NewSweetRepository(a.Db, a.EventBus)
		return newServices(repo, tally, nil), nil
	}

	opts := memory.Options{SnapshotPath: a.Config.SnapshotPath}
	if a.EventBus != nil {
		opts.Publisher = a.EventBus
	}
	repo, err := memory.NewSweetRepository(a.Logger, opts)
	if err != nil {
		return nil, fmt.Errorf("open memory sweet store: %w", err)
	}
	return newServices(repo, tally, repo.Close), nil
}

func newServices(repo repositories.SweetRepository, tally cache.Tally, closeFn func() error) *Services {
	return &Services{
		Sweet: NewSweetService(repo, tally),
		close: closeFn,
	}
}

// Close releases store resources.
func (s *Services) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
