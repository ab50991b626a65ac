package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// Blobs have the same layout as ChaCha20-Poly1305 (12-byte nonce, 16-byte tag), so
// switching FIELD_CIPHER_ALGORITHM only matters for data written afterwards; existing
// rows must be read with the algorithm they were written with.
type AESGCMCipher struct {
	aeadCipher
}

// NewAESGCM creates a new AES-256-GCM cipher instance. The key must be exactly 32 bytes;
// AES-128 and AES-192 keys are rejected.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aeadCipher{aead: aead}}, nil
}
