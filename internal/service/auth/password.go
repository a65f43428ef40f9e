package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a plaintext password against a stored hash.
// A mismatch is a normal false result, not an error.
type CredentialVerifier interface {
	Verify(plaintext, hash string) bool
}

// PasswordHasher produces stored hashes from plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// BcryptVerifier implements CredentialVerifier and PasswordHasher with bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a verifier hashing at cost. Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

var (
	_ CredentialVerifier = (*BcryptVerifier)(nil)
	_ PasswordHasher     = (*BcryptVerifier)(nil)
)

// Cost returns the bcrypt work factor used by Hash.
func (v *BcryptVerifier) Cost() int {
	return v.cost
}

// Verify implements CredentialVerifier.
func (v *BcryptVerifier) Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Hash implements PasswordHasher.
func (v *BcryptVerifier) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
