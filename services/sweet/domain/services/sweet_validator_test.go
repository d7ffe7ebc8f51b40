package services

import (
	"testing"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Soan Papdi", false},
		{"inner double space allowed", "Soan  Papdi", false},
		{"leading space", " Soan", true},
		{"trailing space", "Soan ", true},
		{"only whitespace", "   ", true},
		{"control character", "Soan\x00Papdi", true},
		{"newline", "Soan\nPapdi", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText("name", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDraft(t *testing.T) {
	valid := models.Draft{
		Details: models.Details{
			Name:     "Peda",
			Category: "Milk",
			Price:    models.MustPrice("0.75"),
		},
		Quantity: 0,
	}
	if err := ValidateDraft(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	negative := valid
	negative.Quantity = -1
	if err := ValidateDraft(negative); err == nil {
		t.Fatal("expected error for negative quantity")
	}

	blank := valid
	blank.Name = ""
	if err := ValidateDraft(blank); err == nil {
		t.Fatal("expected error for empty name")
	}

	padded := valid
	padded.Category = " Milk"
	if err := ValidateDraft(padded); err == nil {
		t.Fatal("expected error for padded category")
	}
}

func TestValidateUnits(t *testing.T) {
	for _, units := range []int64{1, 2, 1000} {
		if err := ValidateUnits(units); err != nil {
			t.Errorf("ValidateUnits(%d) unexpected error: %v", units, err)
		}
	}
	for _, units := range []int64{0, -1} {
		if err := ValidateUnits(units); err == nil {
			t.Errorf("ValidateUnits(%d) expected error", units)
		}
	}
}
