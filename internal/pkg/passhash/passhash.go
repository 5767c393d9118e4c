// Package passhash wraps bcrypt for credential storage. Hashing embeds a
// fresh salt on every call, so equal plaintexts never produce equal hashes.
package passhash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrIntegrity marks a hash that bcrypt could not interpret at all, as
// opposed to a clean mismatch. Callers must not treat it as "wrong password".
var ErrIntegrity = errors.New("password hash integrity failure")

func Hash(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// an error is returned only when the stored hash itself is unusable.
func Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrIntegrity, err)
}
