package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/cache"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	domainevents "github.com/ghuser/sweetshop/services/sweet/domain/events"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/repositories"
	"github.com/ghuser/sweetshop/services/sweet/domain/search"
	domainsvcs "github.com/ghuser/sweetshop/services/sweet/domain/services"
)

// Purchase outcomes recorded on the sweetshop.purchases counter.
const (
	resultOK       = "ok"
	resultSoldOut  = "sold_out"
	resultNotFound = "not_found"
	resultError    = "error"
)

var (
	tracer             = otel.Tracer("sweetshop/sweet")
	meter              = otel.Meter("sweetshop/sweet")
	purchaseCounter, _ = meter.Int64Counter("sweetshop.purchases",
		metric.WithDescription("Purchase attempts by result"))
	restockCounter, _ = meter.Int64Counter("sweetshop.restocked_units",
		metric.WithDescription("Units added by restocks"), metric.WithUnit("{unit}"))
)

// SweetInput carries the descriptive fields of an add or update request.
type SweetInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// SalesStats is the units-sold tally for one sweet.
type SalesStats struct {
	SweetID   uuid.UUID
	UnitsSold int64
}

// SweetService is the inventory service. It checks the caller's Account,
// validates input and delegates every state change to the repository, which
// publishes the matching domain event.
type SweetService struct {
	repo  repositories.SweetRepository
	tally cache.Tally
}

// NewSweetService returns a SweetService over repo. tally serves SalesStats.
func NewSweetService(repo repositories.SweetRepository, tally cache.Tally) *SweetService {
	return &SweetService{repo: repo, tally: tally}
}

// List returns all sweets in insertion order.
func (s *SweetService) List(ctx context.Context) (_ []*models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.List")
	defer func() { endSpan(span, err) }()

	if _, err := auth.AccountFromCtx(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Search returns the sweets matching q. An empty query behaves like List.
func (s *SweetService) Search(ctx context.Context, q search.Query) (_ []*models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Search", trace.WithAttributes(
		attribute.String("search.name", q.Name),
		attribute.String("search.category", q.Category),
	))
	defer func() { endSpan(span, err) }()

	if _, err := auth.AccountFromCtx(ctx); err != nil {
		return nil, err
	}
	q = q.Normalize()
	if q.IsEmpty() {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, q)
}

// Get returns one sweet.
func (s *SweetService) Get(ctx context.Context, id uuid.UUID) (_ *models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Get", trace.WithAttributes(sweetAttr(id)))
	defer func() { endSpan(span, err) }()

	if _, err := auth.AccountFromCtx(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Add stores a new sweet with an initial quantity. Requires a privileged account.
func (s *SweetService) Add(ctx context.Context, in SweetInput, quantity int64) (_ *models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Add")
	defer func() { endSpan(span, err) }()

	if _, err := auth.PrivilegedFromCtx(ctx); err != nil {
		return nil, err
	}
	details, err := buildDetails(in)
	if err != nil {
		return nil, err
	}
	draft := models.Draft{Details: details, Quantity: quantity}
	if err := domainsvcs.ValidateDraft(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(sweetAttr(created.ID))
	return created, nil
}

// Purchase removes units from stock. Any authenticated account may purchase.
// Fails with ErrInsufficientStock, leaving stock unchanged, when fewer units remain.
func (s *SweetService) Purchase(ctx context.Context, id uuid.UUID, units int64) (_ *models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Purchase", trace.WithAttributes(
		sweetAttr(id), attribute.Int64("sweet.units", units),
	))
	defer func() { endSpan(span, err) }()

	if _, err := auth.AccountFromCtx(ctx); err != nil {
		return nil, err
	}
	if err := domainsvcs.ValidateUnits(units); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidQuantity, err)
	}

	updated, err := s.repo.UpdateQuantity(ctx, id, -units, domainevents.ReasonPurchase)
	purchaseCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", purchaseResult(err))))
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("sweet.quantity", updated.Quantity))
	return updated, nil
}

// Restock adds units to stock. Requires a privileged account.
func (s *SweetService) Restock(ctx context.Context, id uuid.UUID, units int64) (_ *models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Restock", trace.WithAttributes(
		sweetAttr(id), attribute.Int64("sweet.units", units),
	))
	defer func() { endSpan(span, err) }()

	if _, err := auth.PrivilegedFromCtx(ctx); err != nil {
		return nil, err
	}
	if err := domainsvcs.ValidateUnits(units); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidQuantity, err)
	}

	updated, err := s.repo.UpdateQuantity(ctx, id, units, domainevents.ReasonRestock)
	if err != nil {
		return nil, err
	}
	restockCounter.Add(ctx, units)
	span.SetAttributes(attribute.Int64("sweet.quantity", updated.Quantity))
	return updated, nil
}

// Update replaces name, category and price. Quantity is untouched. Requires a privileged account.
func (s *SweetService) Update(ctx context.Context, id uuid.UUID, in SweetInput) (_ *models.Sweet, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Update", trace.WithAttributes(sweetAttr(id)))
	defer func() { endSpan(span, err) }()

	if _, err := auth.PrivilegedFromCtx(ctx); err != nil {
		return nil, err
	}
	details, err := buildDetails(in)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateDetails(ctx, id, details)
}

// Delete removes a sweet. Requires a privileged account.
func (s *SweetService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "SweetService.Delete", trace.WithAttributes(sweetAttr(id)))
	defer func() { endSpan(span, err) }()

	if _, err := auth.PrivilegedFromCtx(ctx); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SalesStats returns the units sold for an existing sweet. Requires a privileged account.
// The tally is fed asynchronously by event subscribers, so it may trail the latest purchase.
func (s *SweetService) SalesStats(ctx context.Context, id uuid.UUID) (_ SalesStats, err error) {
	ctx, span := tracer.Start(ctx, "SweetService.SalesStats", trace.WithAttributes(sweetAttr(id)))
	defer func() { endSpan(span, err) }()

	if _, err := auth.PrivilegedFromCtx(ctx); err != nil {
		return SalesStats{}, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return SalesStats{}, err
	}
	units, err := s.tally.UnitsSold(ctx, id)
	if err != nil {
		return SalesStats{}, fmt.Errorf("read sales tally: %w", err)
	}
	return SalesStats{SweetID: id, UnitsSold: units}, nil
}

// buildDetails trims the text fields and applies the value object rules.
func buildDetails(in SweetInput) (models.Details, error) {
	price, err := models.NewPrice(in.Price)
	if err != nil {
		return models.Details{}, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}
	details, err := models.NewDetails(strings.TrimSpace(in.Name), strings.TrimSpace(in.Category), price)
	if err != nil {
		return models.Details{}, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}
	if err := domainsvcs.ValidateDetails(details); err != nil {
		return models.Details{}, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}
	return details, nil
}

func purchaseResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, sweetdomain.ErrInsufficientStock):
		return resultSoldOut
	case errors.Is(err, sweetdomain.ErrSweetNotFound):
		return resultNotFound
	default:
		return resultError
	}
}

func sweetAttr(id uuid.UUID) attribute.KeyValue {
	return attribute.String("sweet.id", id.String())
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
