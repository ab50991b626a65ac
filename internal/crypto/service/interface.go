// Package service provides the cryptographic services of the identity core: per-user
// key derivation, authenticated field encryption and the email lookup index.
package service

import (
	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver derives the per-user field key.
type KeyDeriver interface {
	// DeriveKey returns a 32-byte key bound to the master secret and userID.
	// The caller owns the returned slice and should zero it after use.
	DeriveKey(userID string) ([]byte, error)
}

// FieldCipher encrypts individual profile fields into self-contained text blobs.
type FieldCipher interface {
	// Encrypt returns base64(nonce || ciphertext || tag).
	Encrypt(key []byte, plaintext string) (string, error)

	// Decrypt authenticates and opens a blob produced by Encrypt.
	Decrypt(key []byte, blob string) (string, error)
}

// EmailIndexer computes the deterministic lookup hash used to find a user by email.
type EmailIndexer interface {
	// LookupHash returns the hex lookup hash of the normalized email.
	LookupHash(email string) string
}
