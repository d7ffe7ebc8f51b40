package cache

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestLocalTally_RecordDeduplicates(t *testing.T) {
	ctx := context.Background()
	tally := NewLocalTally()
	sweetID := uuid.New()
	eventID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := tally.Record(ctx, eventID, sweetID, 4); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	got, _ := tally.UnitsSold(ctx, sweetID)
	if got != 4 {
		t.Fatalf("expected 4 units, got %d", got)
	}
}

func TestLocalTally_ConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	tally := NewLocalTally()
	sweetID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tally.Record(ctx, uuid.New(), sweetID, 1)
		}()
	}
	wg.Wait()

	if got, _ := tally.UnitsSold(ctx, sweetID); got != 50 {
		t.Fatalf("expected 50 units, got %d", got)
	}
}

func TestLocalTally_Forget(t *testing.T) {
	ctx := context.Background()
	tally := NewLocalTally()
	sweetID := uuid.New()
	_ = tally.Record(ctx, uuid.New(), sweetID, 2)

	if err := tally.Forget(ctx, sweetID); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if got, _ := tally.UnitsSold(ctx, sweetID); got != 0 {
		t.Fatalf("expected 0 after Forget, got %d", got)
	}
	if got, _ := tally.UnitsSold(ctx, uuid.New()); got != 0 {
		t.Fatalf("expected 0 for unknown sweet, got %d", got)
	}
}

func TestLocalTally_SaleAfterForgetIsIgnored(t *testing.T) {
	ctx := context.Background()
	tally := NewLocalTally()
	sweetID := uuid.New()

	if err := tally.Forget(ctx, sweetID); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := tally.Record(ctx, uuid.New(), sweetID, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got, _ := tally.UnitsSold(ctx, sweetID); got != 0 {
		t.Fatalf("expected 0 for a forgotten sweet, got %d", got)
	}
}

func TestLocalTally_PrunesExpiredMarkers(t *testing.T) {
	ctx := context.Background()
	tally := NewLocalTally()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	tally.now = func() time.Time { return now }

	oldEvent := uuid.New()
	_ = tally.Record(ctx, oldEvent, uuid.New(), 1)
	_ = tally.Forget(ctx, uuid.New())

	now = now.Add(salesDedupWindow + localPruneInterval)
	fresh := uuid.New()
	_ = tally.Record(ctx, fresh, uuid.New(), 1)

	tally.mu.Lock()
	defer tally.mu.Unlock()
	if len(tally.seen) != 1 {
		t.Fatalf("expected only the fresh event marker, got %d", len(tally.seen))
	}
	if _, ok := tally.seen[fresh]; !ok {
		t.Fatal("fresh event marker was pruned")
	}
	if len(tally.deleted) != 0 {
		t.Fatalf("expected expired deletion markers pruned, got %d", len(tally.deleted))
	}
}

// failFirst makes the first command named cmd fail before it reaches Redis.
type failFirst struct {
	cmd  string
	mu   sync.Mutex
	done bool
}

var errTransient = errors.New("transient redis error")

func (h *failFirst) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *failFirst) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		fail := !h.done && cmd.Name() == h.cmd
		if fail {
			h.done = true
		}
		h.mu.Unlock()
		if fail {
			cmd.SetErr(errTransient)
			return errTransient
		}
		return next(ctx, cmd)
	}
}

func (h *failFirst) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newMiniTally(t *testing.T) (*SalesTally, *RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(newTestConfig("redis://" + mr.Addr()))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return NewSalesTally(rc), rc
}

func TestSalesTally_RecordDeduplicates(t *testing.T) {
	ctx := context.Background()
	tally, _ := newMiniTally(t)
	sweetID := uuid.New()
	eventID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := tally.Record(ctx, eventID, sweetID, 2); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := tally.Record(ctx, uuid.New(), sweetID, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got, _ := tally.UnitsSold(ctx, sweetID); got != 5 {
		t.Fatalf("expected 5 units, got %d", got)
	}
}

func TestSalesTally_RetryAfterFailedRecordCounts(t *testing.T) {
	ctx := context.Background()
	tally, rc := newMiniTally(t)
	rc.Client().AddHook(&failFirst{cmd: "evalsha"})
	sweetID := uuid.New()
	eventID := uuid.New()

	if err := tally.Record(ctx, eventID, sweetID, 3); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if err := tally.Record(ctx, eventID, sweetID, 3); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if err := tally.Record(ctx, eventID, sweetID, 3); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	got, err := tally.UnitsSold(ctx, sweetID)
	if err != nil {
		t.Fatalf("UnitsSold: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3 units after retry, got %d", got)
	}
}

func TestSalesTally_SaleAfterForgetIsIgnored(t *testing.T) {
	ctx := context.Background()
	tally, _ := newMiniTally(t)
	sweetID := uuid.New()

	if err := tally.Record(ctx, uuid.New(), sweetID, 2); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := tally.Forget(ctx, sweetID); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := tally.Record(ctx, uuid.New(), sweetID, 4); err != nil {
		t.Fatalf("late Record: %v", err)
	}
	if got, _ := tally.UnitsSold(ctx, sweetID); got != 0 {
		t.Fatalf("expected 0 for a forgotten sweet, got %d", got)
	}
}
