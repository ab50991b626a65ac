// Package service provides the credential services of the identity core: password
// hashing and verification, and bearer token issuance and validation.
package service

import (
	authDomain "github.com/allisson/identity/internal/auth/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a self-describing PHC string with a fresh random salt.
	Hash(password string) (string, error)

	// Verify recomputes the digest using the parameters embedded in encodedHash and
	// compares it in constant time. A mismatch is (false, nil); an unparsable
	// encodedHash is (false, ErrInvalidHashFormat).
	Verify(password, encodedHash string) (bool, error)
}

// TokenService issues and validates signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue creates a token for subject valid from now for the configured lifetime.
	Issue(subject string) (*authDomain.Token, error)

	// Validate checks signature, algorithm, structure and expiry. Every failure is
	// ErrInvalidToken.
	Validate(token string) (*authDomain.Claims, error)
}
