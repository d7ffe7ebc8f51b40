package models

import (
	"fmt"
	"unicode/utf8"
)

// SweetName is a value object representing a valid sweet name.
// Encapsulates the structural rule 1 <= runes <= 255.
type SweetName string

// Category is a value object representing a valid sweet category.
// Encapsulates the structural rule 1 <= runes <= 100.
type Category string

const (
	maxSweetNameLength = 255
	maxCategoryLength  = 100
)

// NewSweetName constructs a valid SweetName or returns an error if constraints are violated.
func NewSweetName(s string) (SweetName, error) {
	if err := checkLength("name", s, maxSweetNameLength); err != nil {
		return "", err
	}
	return SweetName(s), nil
}

// NewCategory constructs a valid Category or returns an error if constraints are violated.
func NewCategory(s string) (Category, error) {
	if err := checkLength("category", s, maxCategoryLength); err != nil {
		return "", err
	}
	return Category(s), nil
}

// String returns the underlying string value.
func (n SweetName) String() string {
	return string(n)
}

// String returns the underlying string value.
func (c Category) String() string {
	return string(c)
}

func checkLength(field, s string, max int) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	if n > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}
