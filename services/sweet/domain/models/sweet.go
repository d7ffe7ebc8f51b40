package models

import (
	"time"

	"github.com/google/uuid"
)

// Details are the descriptive fields of a sweet, replaced as a unit by an update.
type Details struct {
	Name     SweetName
	Category Category
	Price    Price
}

// Draft is a sweet that has not been stored yet. The store assigns its ID and timestamps.
type Draft struct {
	Details
	Quantity int64
}

// Sweet is the core aggregate for this bounded context. Values handed out by a
// store are snapshots; mutating them does not affect the stored record.
type Sweet struct {
	ID uuid.UUID
	Details
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDetails builds Details from raw input, applying the value object constructors.
func NewDetails(name, category string, price Price) (Details, error) {
	n, err := NewSweetName(name)
	if err != nil {
		return Details{}, err
	}
	c, err := NewCategory(category)
	if err != nil {
		return Details{}, err
	}
	return Details{Name: n, Category: c, Price: price}, nil
}

// InStock reports whether at least one unit can be purchased.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}
