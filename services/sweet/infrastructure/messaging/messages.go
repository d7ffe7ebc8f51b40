// Package messaging encodes sweet domain events as Watermill messages.
// Both stores publish through it so the wire format is identical whichever
// transport carries the event.
package messaging

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/events"
	domainevents "github.com/ghuser/sweetshop/services/sweet/domain/events"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// Outgoing is an encoded event ready to publish.
type Outgoing struct {
	Topic   string
	Message *message.Message
}

// Created encodes a SweetCreatedEvent for s.
func Created(s *models.Sweet) (Outgoing, error) {
	env := domainevents.NewEnvelope(s.ID, s.CreatedAt)
	return encode(domainevents.TopicSweetCreated, env, domainevents.SweetCreatedEvent{
		Envelope: env,
		Name:     s.Name.String(),
		Category: s.Category.String(),
		Price:    s.Price.String(),
		Quantity: s.Quantity,
	})
}

// StockChanged encodes a SweetStockChangedEvent for a committed delta.
func StockChanged(s *models.Sweet, delta int64, reason string) (Outgoing, error) {
	env := domainevents.NewEnvelope(s.ID, s.UpdatedAt)
	return encode(domainevents.TopicSweetStockChanged, env, domainevents.SweetStockChangedEvent{
		Envelope: env,
		Delta:    delta,
		Reason:   reason,
		Quantity: s.Quantity,
	})
}

// Updated encodes a SweetUpdatedEvent for s.
func Updated(s *models.Sweet) (Outgoing, error) {
	env := domainevents.NewEnvelope(s.ID, s.UpdatedAt)
	return encode(domainevents.TopicSweetUpdated, env, domainevents.SweetUpdatedEvent{
		Envelope: env,
		Name:     s.Name.String(),
		Category: s.Category.String(),
		Price:    s.Price.String(),
	})
}

// Deleted encodes a SweetDeletedEvent for the sweet id removed at at.
func Deleted(id uuid.UUID, at time.Time) (Outgoing, error) {
	env := domainevents.NewEnvelope(id, at)
	return encode(domainevents.TopicSweetDeleted, env, domainevents.SweetDeletedEvent{Envelope: env})
}

func encode(topic string, env domainevents.Envelope, payload any) (Outgoing, error) {
	msg, err := events.NewMessage(env.EventID.String(), env.Version, payload)
	if err != nil {
		return Outgoing{}, fmt.Errorf("encode %s: %w", topic, err)
	}
	return Outgoing{Topic: topic, Message: msg}, nil
}
