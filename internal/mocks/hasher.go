package mocks

import "strings"

// PlainHasher is a fast auth.PasswordHasher and auth.CredentialVerifier for
// tests. Hashes are the plaintext with a fixed prefix.
type PlainHasher struct {
	Err error
}

const plainHashPrefix = "plain$"

// Hash returns the prefixed plaintext, or Err when set.
func (h *PlainHasher) Hash(plaintext string) (string, error) {
	if h.Err != nil {
		return "", h.Err
	}
	return plainHashPrefix + plaintext, nil
}

// Verify reports whether hash was produced from plaintext by Hash.
func (h *PlainHasher) Verify(plaintext, hash string) bool {
	return strings.HasPrefix(hash, plainHashPrefix) && strings.TrimPrefix(hash, plainHashPrefix) == plaintext
}
