package domain

import "errors"

// Sentinel errors for the sweet domain. Use errors.Is() to check these.
var (
	// ErrSweetNotFound indicates the requested sweet does not exist (or was deleted).
	ErrSweetNotFound = errors.New("sweet not found")

	// ErrInvalidSweet indicates a sweet's fields violate domain constraints.
	ErrInvalidSweet = errors.New("invalid sweet")

	// ErrInvalidQuantity indicates a purchase or restock amount below one unit.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock indicates a purchase would drive quantity below zero.
	ErrInsufficientStock = errors.New("sold out")
)
