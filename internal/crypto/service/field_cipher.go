package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

// FieldCipherService encrypts profile fields with the configured AEAD.
//
// Blob layout, before base64 (standard alphabet, padded):
//
//	nonce (12 bytes) || ciphertext || tag (16 bytes)
type FieldCipherService struct {
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
}

// NewFieldCipher creates a FieldCipherService for alg.
func NewFieldCipher(aeadManager AEADManager, alg cryptoDomain.Algorithm) (*FieldCipherService, error) {
	if _, err := cryptoDomain.ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}
	return &FieldCipherService{aeadManager: aeadManager, alg: alg}, nil
}

// Encrypt seals plaintext under key with a fresh random nonce.
func (f *FieldCipherService) Encrypt(key []byte, plaintext string) (string, error) {
	aead, err := f.aeadManager.CreateCipher(key, f.alg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	ciphertext, nonce, err := aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt. The tag is verified before any plaintext
// is returned; every failure is ErrDecryptionFailed.
//
// Only the exact text Encrypt emits is accepted: non-zero padding bits and embedded
// line breaks, which a lenient decoder would skip, are rejected.
func (f *FieldCipherService) Decrypt(key []byte, blob string) (string, error) {
	if strings.ContainsAny(blob, "\r\n") {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(blob)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if len(raw) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	aead, err := f.aeadManager.CreateCipher(key, f.alg)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := aead.Decrypt(raw[cryptoDomain.NonceSize:], raw[:cryptoDomain.NonceSize], nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
