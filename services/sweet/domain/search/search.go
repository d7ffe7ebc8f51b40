// Package search filters sweets by name and category.
//
// Matching is a linear scan over a store snapshot: the catalogue of a single
// shop is small and every query must observe completed writes, so no separate
// index is maintained.
package search

import (
	"strings"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// Query selects sweets. Name matches as a case-insensitive substring,
// Category as a case-insensitive exact value. Empty fields match everything.
type Query struct {
	Name     string
	Category string
}

// IsEmpty reports whether q matches every sweet.
func (q Query) IsEmpty() bool {
	return q.Name == "" && q.Category == ""
}

// Normalize trims surrounding whitespace from both fields.
func (q Query) Normalize() Query {
	return Query{
		Name:     strings.TrimSpace(q.Name),
		Category: strings.TrimSpace(q.Category),
	}
}

// Matches reports whether s satisfies q.
func (q Query) Matches(s *models.Sweet) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(s.Name.String()), strings.ToLower(q.Name)) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(s.Category.String(), q.Category) {
		return false
	}
	return true
}

// Filter returns the sweets of items that match q, preserving order.
// An empty query returns items unchanged.
func Filter(items []*models.Sweet, q Query) []*models.Sweet {
	if q.IsEmpty() {
		return items
	}
	out := make([]*models.Sweet, 0, len(items))
	for _, s := range items {
		if q.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
