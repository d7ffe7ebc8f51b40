package auth

import "testing"

func TestHashPassword_VerifyPassword(t *testing.T) {
	hash, err := HashPassword("securepassword")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "securepassword" {
		t.Fatal("HashPassword() returned the plain text")
	}

	if err := VerifyPassword(hash, "securepassword"); err != nil {
		t.Errorf("VerifyPassword() rejected the right password: %v", err)
	}
	if err := VerifyPassword(hash, "wrongpassword"); err == nil {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, _ := HashPassword("same")
	h2, _ := HashPassword("same")
	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}
