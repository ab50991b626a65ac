package service

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

// KeyDeriverService derives per-user field keys with HKDF-SHA256.
//
// The master secret is the input keying material and the user ID is bound through
// the info parameter, so a key can only be recomputed by a party holding the secret.
// Output is deterministic: the same secret and user ID always give the same key.
type KeyDeriverService struct {
	secret []byte
}

// NewKeyDeriver creates a KeyDeriverService from the master secret.
// The secret bytes are copied; the caller may close masterSecret afterwards.
func NewKeyDeriver(masterSecret *cryptoDomain.MasterSecret) (*KeyDeriverService, error) {
	if masterSecret == nil || len(masterSecret.Key) == 0 {
		return nil, cryptoDomain.ErrMasterSecretNotSet
	}
	if len(masterSecret.Key) < cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrMasterSecretTooShort
	}

	secret := make([]byte, len(masterSecret.Key))
	copy(secret, masterSecret.Key)
	return &KeyDeriverService{secret: secret}, nil
}

// DeriveKey returns the 32-byte field key for userID.
func (k *KeyDeriverService) DeriveKey(userID string) ([]byte, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", cryptoDomain.ErrKeyDerivationFailed)
	}

	info := make([]byte, 0, len(cryptoDomain.FieldKeyInfo)+len(userID))
	info = append(info, cryptoDomain.FieldKeyInfo...)
	info = append(info, userID...)

	reader := hkdf.New(sha256.New, k.secret, nil, info)
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyDerivationFailed, err)
	}
	return key, nil
}
