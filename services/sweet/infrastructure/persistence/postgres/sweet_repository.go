package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/sweetshop/pkg/database"
	"github.com/ghuser/sweetshop/pkg/events"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/search"
	domainsvcs "github.com/ghuser/sweetshop/services/sweet/domain/services"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/messaging"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/persistence/postgres/db"
)

// SQLSTATE codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
	codeInvalidTextEncoding = "22021"
)

// SweetRepository implements repositories.SweetRepository against PostgreSQL.
// Row locks taken by UPDATE and DELETE give per-sweet exclusion.
type SweetRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

// NewSweetRepository returns a SweetRepository backed by the given connection pool
// and event bus. Every mutation writes its event to the outbox in the same transaction.
// A nil bus disables events.
func NewSweetRepository(database *database.Database, bus *events.EventBus) *SweetRepository {
	return &SweetRepository{
		db:  database,
		bus: bus,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new sweet and publishes SweetCreatedEvent within the same transaction.
func (r *SweetRepository) Create(ctx context.Context, draft models.Draft) (*models.Sweet, error) {
	if err := domainsvcs.ValidateDraft(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	var created *models.Sweet
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertSweet(ctx, db.InsertSweetParams{
			ID:        uuid.New(),
			Name:      draft.Name.String(),
			Category:  draft.Category.String(),
			Price:     draft.Price.Decimal(),
			Quantity:  draft.Quantity,
			CreatedAt: r.now(),
		})
		if err != nil {
			return mapWriteError("insert sweet", err)
		}
		created = rowToSweet(row)
		return r.publish(ctx, tx, func() (messaging.Outgoing, error) { return messaging.Created(created) })
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID returns the sweet with id. Returns ErrSweetNotFound if absent.
func (r *SweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	row, err := db.New(r.db.DB()).GetSweetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sweetdomain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("query sweet: %w", err)
	}
	return rowToSweet(row), nil
}

// List returns every sweet in insertion order.
func (r *SweetRepository) List(ctx context.Context) ([]*models.Sweet, error) {
	rows, err := db.New(r.db.DB()).ListSweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sweets: %w", err)
	}
	return rowsToSweets(rows), nil
}

// Search filters in SQL with the same rules as search.Filter.
func (r *SweetRepository) Search(ctx context.Context, q search.Query) ([]*models.Sweet, error) {
	q = q.Normalize()
	if q.IsEmpty() {
		return r.List(ctx)
	}
	rows, err := db.New(r.db.DB()).SearchSweets(ctx, db.SearchSweetsParams{
		NamePattern: escapeLike(q.Name),
		Category:    q.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("search sweets: %w", err)
	}
	return rowsToSweets(rows), nil
}

// UpdateQuantity applies quantity += delta in a single guarded UPDATE.
// When no row changes, an existence probe in the same transaction tells
// ErrSweetNotFound apart from ErrInsufficientStock.
func (r *SweetRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, delta int64, reason string) (*models.Sweet, error) {
	var updated *models.Sweet
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.AddQuantity(ctx, db.AddQuantityParams{ID: id, Delta: delta, UpdatedAt: r.now()})
		if errors.Is(err, sql.ErrNoRows) {
			exists, probeErr := q.SweetExists(ctx, id)
			if probeErr != nil {
				return fmt.Errorf("probe sweet: %w", probeErr)
			}
			if !exists {
				return sweetdomain.ErrSweetNotFound
			}
			return sweetdomain.ErrInsufficientStock
		}
		if err != nil {
			return mapWriteError("update quantity", err)
		}
		updated = rowToSweet(row)
		return r.publish(ctx, tx, func() (messaging.Outgoing, error) {
			return messaging.StockChanged(updated, delta, reason)
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateDetails replaces name, category and price. Returns ErrSweetNotFound if absent.
func (r *SweetRepository) UpdateDetails(ctx context.Context, id uuid.UUID, details models.Details) (*models.Sweet, error) {
	if err := domainsvcs.ValidateDetails(details); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	var updated *models.Sweet
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateDetails(ctx, db.UpdateDetailsParams{
			ID:        id,
			Name:      details.Name.String(),
			Category:  details.Category.String(),
			Price:     details.Price.Decimal(),
			UpdatedAt: r.now(),
		})
		if errors.Is(err, sql.ErrNoRows) {
			return sweetdomain.ErrSweetNotFound
		}
		if err != nil {
			return mapWriteError("update sweet", err)
		}
		updated = rowToSweet(row)
		return r.publish(ctx, tx, func() (messaging.Outgoing, error) { return messaging.Updated(updated) })
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the sweet. Returns ErrSweetNotFound if absent.
func (r *SweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteSweet(ctx, id)
		if err != nil {
			return fmt.Errorf("delete sweet: %w", err)
		}
		if n == 0 {
			return sweetdomain.ErrSweetNotFound
		}
		at := r.now()
		return r.publish(ctx, tx, func() (messaging.Outgoing, error) { return messaging.Deleted(id, at) })
	})
}

// publish writes the encoded event to the outbox through tx.
func (r *SweetRepository) publish(ctx context.Context, tx *sql.Tx, encode func() (messaging.Outgoing, error)) error {
	if r.bus == nil {
		return nil
	}
	out, err := encode()
	if err != nil {
		return err
	}
	events.InjectTrace(ctx, out.Message)
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := p.Publish(out.Topic, out.Message); err != nil {
		return fmt.Errorf("publish %s: %w", out.Topic, err)
	}
	return nil
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeCheckViolation, codeUniqueViolation, codeInvalidTextEncoding:
			return fmt.Errorf("%w: %s", sweetdomain.ErrInvalidSweet, pgErr.Message)
		case codeNumericOutOfRange:
			return fmt.Errorf("%w: %s", sweetdomain.ErrInvalidQuantity, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func rowsToSweets(rows []db.SweetSweet) []*models.Sweet {
	out := make([]*models.Sweet, len(rows))
	for i, row := range rows {
		out[i] = rowToSweet(row)
	}
	return out
}

// rowToSweet maps a db.SweetSweet to a domain models.Sweet.
func rowToSweet(row db.SweetSweet) *models.Sweet {
	price, _ := models.NewPrice(row.Price) // NUMERIC(12,2) with CHECK (price >= 0)
	return &models.Sweet{
		ID: row.ID,
		Details: models.Details{
			Name:     models.SweetName(row.Name),
			Category: models.Category(row.Category),
			Price:    price,
		},
		Quantity:  row.Quantity,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
