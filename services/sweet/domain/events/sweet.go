package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the sweet stores.
const (
	TopicSweetCreated      = "sweet.created"
	TopicSweetStockChanged = "sweet.stock_changed"
	TopicSweetUpdated      = "sweet.updated"
	TopicSweetDeleted      = "sweet.deleted"
)

// Reasons carried by SweetStockChangedEvent.
const (
	ReasonPurchase = "purchase"
	ReasonRestock  = "restock"
)

// Version is the current schema version of every sweet event payload.
const Version = 1

// Envelope carries the fields shared by every sweet event.
type Envelope struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SweetID    uuid.UUID `json:"sweet_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEnvelope returns an Envelope for sweetID stamped with a fresh event id.
func NewEnvelope(sweetID uuid.UUID, at time.Time) Envelope {
	return Envelope{
		EventID:    uuid.New(),
		Version:    Version,
		SweetID:    sweetID,
		OccurredAt: at,
	}
}

// SweetCreatedEvent is published after a new sweet is stored.
type SweetCreatedEvent struct {
	Envelope
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

// SweetStockChangedEvent is published after a purchase or restock commits.
// Rejected deltas never produce an event.
type SweetStockChangedEvent struct {
	Envelope
	Delta    int64  `json:"delta"`
	Reason   string `json:"reason"`
	Quantity int64  `json:"quantity"` // quantity after the change
}

// UnitsSold returns the units removed by a purchase, or zero for restocks.
func (e SweetStockChangedEvent) UnitsSold() int64 {
	if e.Reason != ReasonPurchase || e.Delta >= 0 {
		return 0
	}
	return -e.Delta
}

// SweetUpdatedEvent is published after name, category or price change.
type SweetUpdatedEvent struct {
	Envelope
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// SweetDeletedEvent is published after a sweet is removed.
type SweetDeletedEvent struct {
	Envelope
}
