package models

import (
	"strings"
	"testing"
)

func TestNewUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "alice", false},
		{"digits and symbols", "bob_99-x", false},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"space", "al ice", true},
		{"punctuation", "alice!", true},
		{"non ascii", "ålice", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestUsername_Key(t *testing.T) {
	if got := Username("Alice").Key(); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"minimum", "12345678", false},
		{"maximum", strings.Repeat("p", 72), false},
		{"too short", "1234567", true},
		{"too long", strings.Repeat("p", 73), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.input); (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePassword error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewUser(t *testing.T) {
	u := NewUser("alice", "hash")
	if u.ID.String() == "00000000-0000-0000-0000-000000000000" || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", u)
	}
}
