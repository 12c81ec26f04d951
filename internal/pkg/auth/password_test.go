package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("xerox@2025")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "xerox@2025" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := h.Compare(hash, "xerox@2025"); err != nil {
		t.Fatalf("compare with correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error for wrong password")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.cost == 0 {
		t.Fatal("expected default cost to be applied")
	}
}
