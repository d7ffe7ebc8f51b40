package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// priceScale is the number of fractional digits a price may carry.
const priceScale = 2

// Price is a non-negative money amount with at most two fractional digits.
type Price struct {
	d decimal.Decimal
}

// NewPrice constructs a valid Price from d.
func NewPrice(d decimal.Decimal) (Price, error) {
	if d.IsNegative() {
		return Price{}, errors.New("price must not be negative")
	}
	if !d.Equal(d.Truncate(priceScale)) {
		return Price{}, fmt.Errorf("price must have at most %d decimal places", priceScale)
	}
	return Price{d: d}, nil
}

// MustPrice parses s and panics when it is not a valid Price. Intended for tests and fixtures.
func MustPrice(s string) Price {
	p, err := NewPrice(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal returns the underlying amount.
func (p Price) Decimal() decimal.Decimal {
	return p.d
}

// String renders the price with exactly two decimals, e.g. "2.50".
func (p Price) String() string {
	return p.d.StringFixed(priceScale)
}

// Equal reports whether both prices denote the same amount.
func (p Price) Equal(o Price) bool {
	return p.d.Equal(o.d)
}

// MarshalJSON renders the price as a JSON number with two decimals.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string and re-applies the Price rules.
func (p *Price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	v, err := NewPrice(d)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
