package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/search"
)

// SweetRepository is the persistence interface for the Sweet aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations serialise UpdateQuantity, UpdateDetails and Delete per id
// without a global lock, and List/Search never block on in-flight mutations.
type SweetRepository interface {
	// Create assigns a fresh id and timestamps to draft and stores it.
	Create(ctx context.Context, draft models.Draft) (*models.Sweet, error)

	// GetByID returns ErrSweetNotFound if no sweet has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error)

	// List returns every stored sweet in insertion order.
	List(ctx context.Context) ([]*models.Sweet, error)

	// Search returns the sweets matching q, in insertion order.
	Search(ctx context.Context, q search.Query) ([]*models.Sweet, error)

	// UpdateQuantity atomically applies quantity += delta. A delta that would
	// make the quantity negative fails with ErrInsufficientStock and changes nothing.
	// reason is recorded on the emitted stock event.
	UpdateQuantity(ctx context.Context, id uuid.UUID, delta int64, reason string) (*models.Sweet, error)

	// UpdateDetails replaces name, category and price; quantity is untouched.
	UpdateDetails(ctx context.Context, id uuid.UUID, details models.Details) (*models.Sweet, error)

	// Delete removes the sweet. Returns ErrSweetNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
