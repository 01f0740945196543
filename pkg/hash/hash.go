// Package hash provides one-way password hashing behind a small interface so
// the algorithm (and its cost) can be swapped at startup.
package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes plaintext passwords and verifies candidates against
// previously produced hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The cost is fixed at
// construction; verification accepts hashes produced under any cost because
// bcrypt encodes its parameters in the hash itself.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Costs outside
// bcrypt's valid range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hashed. A malformed hash string is
// treated as a mismatch, never an error.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
