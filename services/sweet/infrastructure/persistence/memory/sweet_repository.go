// Package memory is the in-process SweetRepository.
//
// Records live in an arena of slots. Each slot owns a mutex that serialises
// writers of that one sweet, and an atomic pointer to the current immutable
// version of the record. Readers load the pointer and never take a slot lock.
// The arena lock guards only the slot slice and the id index, so it is held
// exclusively for inserts, index removal and compaction.
package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/logger"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/search"
	domainsvcs "github.com/ghuser/sweetshop/services/sweet/domain/services"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/messaging"
)

// Publisher delivers committed events. *events.EventBus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// slot holds one sweet. cur is nil once the sweet is deleted.
type slot struct {
	id  uuid.UUID
	mu  sync.Mutex
	cur atomic.Pointer[models.Sweet]
}

// SweetRepository implements repositories.SweetRepository in memory.
type SweetRepository struct {
	arenaMu sync.RWMutex
	slots   []*slot
	index   map[uuid.UUID]int

	pub     Publisher
	log     logger.Logger
	persist *persister
	now     func() time.Time
}

// Options configures a SweetRepository.
type Options struct {
	// Publisher receives sweet events after each committed mutation; nil disables events.
	Publisher Publisher
	// SnapshotPath enables JSON snapshots; empty keeps the store purely in memory.
	SnapshotPath string
}

// NewSweetRepository returns an empty repository, or one restored from
// opts.SnapshotPath when that file exists.
func NewSweetRepository(log logger.Logger, opts Options) (*SweetRepository, error) {
	r := &SweetRepository{
		index: make(map[uuid.UUID]int),
		pub:   opts.Publisher,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}

	if opts.SnapshotPath != "" {
		restored, err := readSnapshot(opts.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("restore sweets: %w", err)
		}
		for _, s := range restored {
			r.insert(s)
		}
		r.persist = newPersister(opts.SnapshotPath, r.snapshot, log)
		log.Info("memory sweet store restored", "path", opts.SnapshotPath, "sweets", len(restored))
	}
	return r, nil
}

// Close flushes a pending snapshot and stops the background writer.
func (r *SweetRepository) Close() error {
	if r.persist == nil {
		return nil
	}
	return r.persist.close()
}

// Create stores draft under a fresh id. Returns ErrInvalidSweet when the draft breaks domain rules.
func (r *SweetRepository) Create(ctx context.Context, draft models.Draft) (*models.Sweet, error) {
	if err := domainsvcs.ValidateDraft(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	now := r.now()
	s := &models.Sweet{
		ID:        uuid.New(),
		Details:   draft.Details,
		Quantity:  draft.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.arenaMu.Lock()
	r.insert(s)
	r.arenaMu.Unlock()

	r.committed(ctx, func() (messaging.Outgoing, error) { return messaging.Created(s) })
	return clone(s), nil
}

// GetByID returns the current version of the sweet.
func (r *SweetRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Sweet, error) {
	sl := r.lookup(id)
	if sl == nil {
		return nil, sweetdomain.ErrSweetNotFound
	}
	cur := sl.cur.Load()
	if cur == nil {
		return nil, sweetdomain.ErrSweetNotFound
	}
	return clone(cur), nil
}

// List returns every live sweet in insertion order.
func (r *SweetRepository) List(_ context.Context) ([]*models.Sweet, error) {
	return r.snapshot(), nil
}

// Search returns the live sweets matching q, in insertion order.
func (r *SweetRepository) Search(_ context.Context, q search.Query) ([]*models.Sweet, error) {
	return search.Filter(r.snapshot(), q), nil
}

// UpdateQuantity applies quantity += delta under the sweet's slot lock.
func (r *SweetRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, delta int64, reason string) (*models.Sweet, error) {
	next, err := r.mutate(id, func(cur *models.Sweet) (*models.Sweet, error) {
		if cur.Quantity+delta < 0 {
			return nil, sweetdomain.ErrInsufficientStock
		}
		if delta > 0 && cur.Quantity > math.MaxInt64-delta {
			return nil, fmt.Errorf("%w: restock would overflow stock", sweetdomain.ErrInvalidQuantity)
		}
		n := *cur
		n.Quantity += delta
		return &n, nil
	})
	if err != nil {
		return nil, err
	}

	r.committed(ctx, func() (messaging.Outgoing, error) { return messaging.StockChanged(next, delta, reason) })
	return clone(next), nil
}

// UpdateDetails replaces name, category and price under the sweet's slot lock.
func (r *SweetRepository) UpdateDetails(ctx context.Context, id uuid.UUID, details models.Details) (*models.Sweet, error) {
	if err := domainsvcs.ValidateDetails(details); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}
	next, err := r.mutate(id, func(cur *models.Sweet) (*models.Sweet, error) {
		n := *cur
		n.Details = details
		return &n, nil
	})
	if err != nil {
		return nil, err
	}

	r.committed(ctx, func() (messaging.Outgoing, error) { return messaging.Updated(next) })
	return clone(next), nil
}

// Delete tombstones the sweet under its slot lock, then drops it from the index.
// A mutation that already holds the slot lock finishes first; later ones see NotFound.
func (r *SweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sl := r.lookup(id)
	if sl == nil {
		return sweetdomain.ErrSweetNotFound
	}

	sl.mu.Lock()
	if sl.cur.Load() == nil {
		sl.mu.Unlock()
		return sweetdomain.ErrSweetNotFound
	}
	sl.cur.Store(nil)
	sl.mu.Unlock()

	r.arenaMu.Lock()
	delete(r.index, id)
	if dead := len(r.slots) - len(r.index); dead > len(r.index) {
		r.compact()
	}
	r.arenaMu.Unlock()

	at := r.now()
	r.committed(ctx, func() (messaging.Outgoing, error) { return messaging.Deleted(id, at) })
	return nil
}

// mutate runs fn against the current version while holding the slot lock and
// installs the version it returns.
func (r *SweetRepository) mutate(id uuid.UUID, fn func(cur *models.Sweet) (*models.Sweet, error)) (*models.Sweet, error) {
	sl := r.lookup(id)
	if sl == nil {
		return nil, sweetdomain.ErrSweetNotFound
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	cur := sl.cur.Load()
	if cur == nil {
		return nil, sweetdomain.ErrSweetNotFound
	}
	next, err := fn(cur)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = r.now()
	sl.cur.Store(next)
	return next, nil
}

func (r *SweetRepository) lookup(id uuid.UUID) *slot {
	r.arenaMu.RLock()
	defer r.arenaMu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return r.slots[i]
}

// insert appends s to the arena. Callers hold arenaMu, except during construction.
func (r *SweetRepository) insert(s *models.Sweet) {
	sl := &slot{id: s.ID}
	sl.cur.Store(s)
	r.index[s.ID] = len(r.slots)
	r.slots = append(r.slots, sl)
}

// compact drops tombstoned slots. Callers hold arenaMu exclusively.
// Live slots keep their identity, so writers holding a slot pointer are unaffected.
func (r *SweetRepository) compact() {
	live := make([]*slot, 0, len(r.index))
	for _, sl := range r.slots {
		if sl.cur.Load() == nil {
			continue
		}
		live = append(live, sl)
	}
	index := make(map[uuid.UUID]int, len(live))
	for i, sl := range live {
		index[sl.id] = i
	}
	r.slots = live
	r.index = index
}

// snapshot returns copies of the live sweets in insertion order.
func (r *SweetRepository) snapshot() []*models.Sweet {
	r.arenaMu.RLock()
	defer r.arenaMu.RUnlock()

	out := make([]*models.Sweet, 0, len(r.index))
	for _, sl := range r.slots {
		if cur := sl.cur.Load(); cur != nil {
			out = append(out, clone(cur))
		}
	}
	return out
}

// committed queues a snapshot write and publishes the event built by encode.
// The mutation is already visible; publish failures are logged, not returned.
func (r *SweetRepository) committed(ctx context.Context, encode func() (messaging.Outgoing, error)) {
	if r.persist != nil {
		r.persist.queue()
	}
	if r.pub == nil {
		return
	}
	out, err := encode()
	if err != nil {
		r.log.ErrorContext(ctx, "encode sweet event", "error", err)
		return
	}
	if err := r.pub.Publish(ctx, out.Topic, out.Message); err != nil {
		r.log.ErrorContext(ctx, "publish sweet event", "topic", out.Topic, "error", err)
	}
}

func clone(s *models.Sweet) *models.Sweet {
	c := *s
	return &c
}
