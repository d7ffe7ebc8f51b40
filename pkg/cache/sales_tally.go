package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	salesKeyPrefix     = "sweet:sales"
	salesSeenPrefix    = "sweet:sales:seen"
	salesDeletedPrefix = "sweet:sales:deleted"
	salesUnitsField    = "units_sold"
	salesDedupWindow   = 24 * time.Hour
	localPruneInterval = time.Hour
)

// recordSale counts a sale once per event and never for a forgotten sweet.
// KEYS: seen marker, deleted marker, tally hash. ARGV: units, marker ttl in seconds.
var recordSale = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
if not redis.call("SET", KEYS[1], 1, "NX", "EX", ARGV[2]) then
	return 0
end
redis.call("HINCRBY", KEYS[3], "` + salesUnitsField + `", ARGV[1])
return 1
`)

// Tally counts units sold per sweet. Record is keyed by the domain event id so
// redelivered events are counted once. Sales delivered after Forget are ignored.
type Tally interface {
	Record(ctx context.Context, eventID, sweetID uuid.UUID, units int64) error
	UnitsSold(ctx context.Context, sweetID uuid.UUID) (int64, error)
	Forget(ctx context.Context, sweetID uuid.UUID) error
}

// SalesTally keeps the tally in Redis hashes.
// Key format: "sweet:sales:{sweetID}" with field "units_sold".
type SalesTally struct {
	client *RedisClient
}

// NewSalesTally returns a SalesTally backed by r.
func NewSalesTally(r *RedisClient) *SalesTally {
	return &SalesTally{client: r}
}

// Record adds units to the sweet's tally unless eventID was already recorded
// or the sweet was forgotten. The marker and the increment are applied atomically.
func (t *SalesTally) Record(ctx context.Context, eventID, sweetID uuid.UUID, units int64) error {
	keys := []string{
		fmt.Sprintf("%s:%s", salesSeenPrefix, eventID),
		t.deletedKey(sweetID),
		t.key(sweetID),
	}
	ttl := int64(salesDedupWindow / time.Second)
	if err := recordSale.Run(ctx, t.client.Client(), keys, units, ttl).Err(); err != nil {
		return fmt.Errorf("tally record: %w", err)
	}
	return nil
}

// UnitsSold returns the tally for sweetID, zero if nothing was recorded.
func (t *SalesTally) UnitsSold(ctx context.Context, sweetID uuid.UUID) (int64, error) {
	v, err := t.client.Client().HGet(ctx, t.key(sweetID), salesUnitsField).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("tally get: %w", err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("tally parse: %w", err)
	}
	return n, nil
}

// Forget drops the tally of a deleted sweet and blocks sales that arrive after it.
func (t *SalesTally) Forget(ctx context.Context, sweetID uuid.UUID) error {
	_, err := t.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, t.deletedKey(sweetID), 1, salesDedupWindow)
		pipe.Del(ctx, t.key(sweetID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("tally forget: %w", err)
	}
	return nil
}

func (t *SalesTally) key(sweetID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", salesKeyPrefix, sweetID)
}

func (t *SalesTally) deletedKey(sweetID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", salesDeletedPrefix, sweetID)
}

// LocalTally is the in-process Tally used when Redis is disabled. Event and
// deletion markers are kept for the same window as in Redis.
type LocalTally struct {
	mu      sync.Mutex
	units   map[uuid.UUID]int64
	seen    map[uuid.UUID]time.Time // event id -> recorded at
	deleted map[uuid.UUID]time.Time // sweet id -> forgotten at
	pruned  time.Time
	now     func() time.Time
}

// NewLocalTally returns an empty LocalTally.
func NewLocalTally() *LocalTally {
	return &LocalTally{
		units:   make(map[uuid.UUID]int64),
		seen:    make(map[uuid.UUID]time.Time),
		deleted: make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

// Record adds units to the sweet's tally unless eventID was already recorded
// or the sweet was forgotten.
func (t *LocalTally) Record(_ context.Context, eventID, sweetID uuid.UUID, units int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.prune(now)
	if _, gone := t.deleted[sweetID]; gone {
		return nil
	}
	if _, dup := t.seen[eventID]; dup {
		return nil
	}
	t.seen[eventID] = now
	t.units[sweetID] += units
	return nil
}

// UnitsSold returns the tally for sweetID.
func (t *LocalTally) UnitsSold(_ context.Context, sweetID uuid.UUID) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.units[sweetID], nil
}

// Forget drops the tally of a deleted sweet and blocks sales that arrive after it.
func (t *LocalTally) Forget(_ context.Context, sweetID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.prune(now)
	delete(t.units, sweetID)
	t.deleted[sweetID] = now
	return nil
}

// prune drops markers older than the dedup window, at most once per interval.
// Callers hold t.mu.
func (t *LocalTally) prune(now time.Time) {
	if now.Sub(t.pruned) < localPruneInterval {
		return
	}
	t.pruned = now
	cutoff := now.Add(-salesDedupWindow)
	for id, at := range t.seen {
		if at.Before(cutoff) {
			delete(t.seen, id)
		}
	}
	for id, at := range t.deleted {
		if at.Before(cutoff) {
			delete(t.deleted, id)
		}
	}
}
