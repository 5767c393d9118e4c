package passhash

import (
	"errors"
	"testing"
)

func TestHashProducesFreshSalt(t *testing.T) {
	first, err := Hash("secret1", 4)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("secret1", 4)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same plaintext")
	}
}

func TestVerify(t *testing.T) {
	hash, err := Hash("secret1", 4)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	match, err := Verify("secret1", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !match {
		t.Fatalf("expected correct password to match")
	}

	match, err = Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify mismatch should not error: %v", err)
	}
	if match {
		t.Fatalf("expected wrong password to mismatch")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	match, err := Verify("secret1", "not-a-bcrypt-hash")
	if match {
		t.Fatalf("expected no match for malformed hash")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestHashCostOutOfRangeFallsBack(t *testing.T) {
	hash, err := Hash("secret1", 99)
	if err != nil {
		t.Fatalf("Hash with out-of-range cost: %v", err)
	}
	match, err := Verify("secret1", hash)
	if err != nil || !match {
		t.Fatalf("expected fallback-cost hash to verify, match=%v err=%v", match, err)
	}
}
