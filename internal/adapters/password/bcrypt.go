// Package password hashes credentials with bcrypt. The work factor is fixed
// at construction so every stored hash carries the same cost.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/liftdiary/api/internal/core/ports"
)

const workFactor = 10

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() ports.PasswordHasher {
	return &BcryptHasher{cost: workFactor}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt's comparison is
// constant-time over the derived key; a mismatch is a false, never an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
