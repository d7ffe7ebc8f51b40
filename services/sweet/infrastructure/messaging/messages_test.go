package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	domainevents "github.com/ghuser/sweetshop/services/sweet/domain/events"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

func sample() *models.Sweet {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Sweet{
		ID: uuid.New(),
		Details: models.Details{
			Name:     "Jalebi",
			Category: "Fried",
			Price:    models.MustPrice("1.5"),
		},
		Quantity:  4,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStockChanged(t *testing.T) {
	s := sample()
	out, err := StockChanged(s, -2, domainevents.ReasonPurchase)
	if err != nil {
		t.Fatalf("StockChanged: %v", err)
	}
	if out.Topic != domainevents.TopicSweetStockChanged {
		t.Fatalf("unexpected topic %q", out.Topic)
	}

	var evt domainevents.SweetStockChangedEvent
	if err := json.Unmarshal(out.Message.Payload, &evt); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if evt.SweetID != s.ID || evt.Delta != -2 || evt.Quantity != 4 || evt.Reason != domainevents.ReasonPurchase {
		t.Fatalf("unexpected event: %+v", evt)
	}
	if out.Message.Metadata.Get("event_id") != evt.EventID.String() {
		t.Fatalf("metadata event_id %q does not match payload %s", out.Message.Metadata.Get("event_id"), evt.EventID)
	}
}

func TestCreatedCarriesFormattedPrice(t *testing.T) {
	out, err := Created(sample())
	if err != nil {
		t.Fatalf("Created: %v", err)
	}
	var evt domainevents.SweetCreatedEvent
	if err := json.Unmarshal(out.Message.Payload, &evt); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if evt.Price != "1.50" {
		t.Fatalf("expected price 1.50, got %q", evt.Price)
	}
}

func TestDeletedAndUpdatedTopics(t *testing.T) {
	s := sample()
	del, err := Deleted(s.ID, time.Now())
	if err != nil {
		t.Fatalf("Deleted: %v", err)
	}
	upd, err := Updated(s)
	if err != nil {
		t.Fatalf("Updated: %v", err)
	}
	if del.Topic != domainevents.TopicSweetDeleted || upd.Topic != domainevents.TopicSweetUpdated {
		t.Fatalf("unexpected topics %q, %q", del.Topic, upd.Topic)
	}
}
