package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SweetSweet is one row of the sweets table.
type SweetSweet struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
