// Package services contains stateless domain services for the sweet bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// ValidateText enforces business rules for names and categories beyond the
// structural constraints enforced by their constructors.
//
// Business rules:
//   - No leading or trailing whitespace
//   - Must not be only whitespace characters
//   - No control characters (Unicode category Cc)
func ValidateText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s must not be only whitespace", field)
	}

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("%s must not have leading or trailing whitespace", field)
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s must not contain control characters", field)
		}
	}

	return nil
}

// ValidateDetails checks name and category against ValidateText.
func ValidateDetails(d models.Details) error {
	if err := ValidateText("name", d.Name.String()); err != nil {
		return err
	}
	if err := ValidateText("category", d.Category.String()); err != nil {
		return err
	}
	if d.Price.Decimal().IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}

// ValidateDraft performs the checks a store applies before persisting a new sweet.
func ValidateDraft(d models.Draft) error {
	if err := ValidateDetails(d.Details); err != nil {
		return err
	}
	if d.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

// ValidateUnits checks a purchase or restock amount.
func ValidateUnits(units int64) error {
	if units < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", units)
	}
	return nil
}
