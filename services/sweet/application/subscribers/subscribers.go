// Package subscribers consumes sweet domain events: it feeds the sales tally
// and warns when stock runs low. Handlers are idempotent, since the bus
// delivers at least once.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/pkg/events"
	"github.com/ghuser/sweetshop/pkg/logger"
	domainevents "github.com/ghuser/sweetshop/services/sweet/domain/events"
)

// Subscribers holds the sweet event handlers.
type Subscribers struct {
	tally    cache.Tally
	lowStock int64
	log      logger.Logger
}

// New returns handlers writing to tally. Purchases leaving lowStock units or fewer are logged.
func New(tally cache.Tally, lowStock int64, log logger.Logger) *Subscribers {
	return &Subscribers{tally: tally, lowStock: lowStock, log: log}
}

// Register subscribes every handler on bus. Subscriber errors are logged until ctx ends.
func (s *Subscribers) Register(ctx context.Context, bus *events.EventBus) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		domainevents.TopicSweetStockChanged: s.HandleStockChanged,
		domainevents.TopicSweetDeleted:      s.HandleDeleted,
	}
	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		go s.drain(ctx, topic, errCh)
		topics = append(topics, topic)
	}

	s.log.Info("event subscribers registered", "topics", topics)
	return nil
}

// drain logs subscriber errors so the channel never blocks.
func (s *Subscribers) drain(ctx context.Context, topic string, errCh <-chan error) {
	for err := range errCh {
		s.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}

// HandleStockChanged tallies purchases and warns on low stock.
func (s *Subscribers) HandleStockChanged(ctx context.Context, msg *message.Message) error {
	var evt domainevents.SweetStockChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", domainevents.TopicSweetStockChanged, err)
	}

	if units := evt.UnitsSold(); units > 0 {
		if err := s.tally.Record(ctx, evt.EventID, evt.SweetID, units); err != nil {
			return err
		}
		if evt.Quantity <= s.lowStock {
			s.log.WarnContext(ctx, "low stock",
				"sweet_id", evt.SweetID, "quantity", evt.Quantity, "threshold", s.lowStock)
		}
	}
	return nil
}

// HandleDeleted drops the tally of a removed sweet.
func (s *Subscribers) HandleDeleted(ctx context.Context, msg *message.Message) error {
	var evt domainevents.SweetDeletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", domainevents.TopicSweetDeleted, err)
	}
	if err := s.tally.Forget(ctx, evt.SweetID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "sales tally dropped", "sweet_id", evt.SweetID)
	return nil
}
