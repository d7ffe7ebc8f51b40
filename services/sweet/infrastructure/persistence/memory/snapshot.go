package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/logger"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// snapshotFile is the on-disk layout. Sweets are stored in insertion order.
type snapshotFile struct {
	Sweets []snapshotSweet `json:"sweets"`
}

type snapshotSweet struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Price     models.Price `json:"price"`
	Quantity  int64        `json:"quantity"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// persister writes snapshots from a single background goroutine. Mutations
// only mark the store dirty, so bursts of writes collapse into one file write.
type persister struct {
	path    string
	collect func() []*models.Sweet
	log     logger.Logger

	dirty   chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newPersister(path string, collect func() []*models.Sweet, log logger.Logger) *persister {
	p := &persister{
		path:    path,
		collect: collect,
		log:     log,
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.loop()
	return p
}

// queue marks the store dirty without blocking.
func (p *persister) queue() {
	select {
	case p.dirty <- struct{}{}:
	default:
	}
}

func (p *persister) loop() {
	defer close(p.stopped)
	for {
		select {
		case <-p.dirty:
			p.flush()
		case <-p.done:
			select {
			case <-p.dirty:
				p.flush()
			default:
			}
			return
		}
	}
}

func (p *persister) flush() {
	if err := writeSnapshot(p.path, p.collect()); err != nil {
		p.log.Error("write sweet snapshot", "path", p.path, "error", err)
	}
}

// close waits for the final flush.
func (p *persister) close() error {
	close(p.done)
	<-p.stopped
	return nil
}

// readSnapshot loads the sweets stored at path. A missing or empty file yields none.
func readSnapshot(path string) ([]*models.Sweet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	out := make([]*models.Sweet, 0, len(snap.Sweets))
	seen := make(map[uuid.UUID]struct{}, len(snap.Sweets))
	for _, s := range snap.Sweets {
		if _, dup := seen[s.ID]; dup || s.ID == uuid.Nil {
			return nil, fmt.Errorf("decode %s: duplicate or empty id %s", path, s.ID)
		}
		if s.Quantity < 0 {
			return nil, fmt.Errorf("decode %s: sweet %s has negative quantity", path, s.ID)
		}
		seen[s.ID] = struct{}{}
		out = append(out, &models.Sweet{
			ID: s.ID,
			Details: models.Details{
				Name:     models.SweetName(s.Name),
				Category: models.Category(s.Category),
				Price:    s.Price,
			},
			Quantity:  s.Quantity,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out, nil
}

// writeSnapshot replaces the file at path atomically via a temp file and rename.
func writeSnapshot(path string, sweets []*models.Sweet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	snap := snapshotFile{Sweets: make([]snapshotSweet, len(sweets))}
	for i, s := range sweets {
		snap.Sweets[i] = snapshotSweet{
			ID:        s.ID,
			Name:      s.Name.String(),
			Category:  s.Category.String(),
			Price:     s.Price,
			Quantity:  s.Quantity,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
