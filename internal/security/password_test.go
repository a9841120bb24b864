package security

import (
	"strings"
	"testing"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter2-long-enough")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash == "hunter2-long-enough" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ (salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if err := CheckPassword(hash, "correct-horse"); err != nil {
		t.Errorf("CheckPassword() with right password: %v", err)
	}

	if err := CheckPassword(hash, "battery-staple"); err == nil {
		t.Error("CheckPassword() expected error for wrong password")
	}
}
