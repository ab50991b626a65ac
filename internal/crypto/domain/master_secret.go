package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// KMSKeeper is the subset of *secrets.Keeper used to unwrap the master secret.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterSecret holds the server-side secret all per-user field keys are derived from.
// It is loaded once at start-up and never persisted alongside user data.
type MasterSecret struct {
	Key []byte
}

// Close zeroes the secret.
func (m *MasterSecret) Close() {
	Zero(m.Key)
	m.Key = nil
}

// LoadMasterSecret decodes a base64 master secret and checks its length.
func LoadMasterSecret(encoded string) (*MasterSecret, error) {
	raw, err := decodeMasterSecret(encoded)
	if err != nil {
		return nil, err
	}
	return newMasterSecret(raw)
}

// LoadMasterSecretWithKMS decodes a base64 KMS ciphertext and unwraps it with keeper.
func LoadMasterSecretWithKMS(ctx context.Context, keeper KMSKeeper, encoded string) (*MasterSecret, error) {
	ciphertext, err := decodeMasterSecret(encoded)
	if err != nil {
		return nil, err
	}

	raw, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt master secret with KMS: %w", err)
	}
	return newMasterSecret(raw)
}

func decodeMasterSecret(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterSecretNotSet
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
	}
	return raw, nil
}

func newMasterSecret(raw []byte) (*MasterSecret, error) {
	if len(raw) < KeySize {
		Zero(raw)
		return nil, fmt.Errorf("%w: got %d", ErrMasterSecretTooShort, len(raw))
	}
	return &MasterSecret{Key: raw}, nil
}
