package domain

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/identity/internal/errors"
)

type fakeKeeper struct {
	plaintext []byte
	err       error
	closed    bool
}

func (f *fakeKeeper) Decrypt(_ context.Context, _ []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return bytes.Clone(f.plaintext), nil
}

func (f *fakeKeeper) Close() error {
	f.closed = true
	return nil
}

func TestLoadMasterSecret(t *testing.T) {
	secret := bytes.Repeat([]byte{0x42}, 32)

	t.Run("valid 32-byte secret", func(t *testing.T) {
		ms, err := LoadMasterSecret(base64.StdEncoding.EncodeToString(secret))
		require.NoError(t, err)
		assert.Equal(t, secret, ms.Key)
	})

	t.Run("longer secret is accepted", func(t *testing.T) {
		long := bytes.Repeat([]byte{0x01}, 64)
		ms, err := LoadMasterSecret(base64.StdEncoding.EncodeToString(long))
		require.NoError(t, err)
		assert.Len(t, ms.Key, 64)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		ms, err := LoadMasterSecret("  " + base64.StdEncoding.EncodeToString(secret) + "\n")
		require.NoError(t, err)
		assert.Equal(t, secret, ms.Key)
	})

	tests := []struct {
		name    string
		encoded string
		err     error
	}{
		{"empty", "", ErrMasterSecretNotSet},
		{"blank", "   ", ErrMasterSecretNotSet},
		{"invalid base64", "not-base64!!", ErrInvalidMasterSecretBase64},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short")), ErrMasterSecretTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := LoadMasterSecret(tt.encoded)
			assert.Nil(t, ms)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		})
	}
}

func TestLoadMasterSecretWithKMS(t *testing.T) {
	ctx := context.Background()
	secret := bytes.Repeat([]byte{0x07}, 32)
	wrapped := base64.StdEncoding.EncodeToString([]byte("kms-ciphertext"))

	t.Run("Success", func(t *testing.T) {
		keeper := &fakeKeeper{plaintext: secret}

		ms, err := LoadMasterSecretWithKMS(ctx, keeper, wrapped)
		require.NoError(t, err)
		assert.Equal(t, secret, ms.Key)
	})

	t.Run("Error_KeeperFails", func(t *testing.T) {
		keeper := &fakeKeeper{err: errors.New("kms unavailable")}

		ms, err := LoadMasterSecretWithKMS(ctx, keeper, wrapped)
		assert.Nil(t, ms)
		assert.ErrorContains(t, err, "failed to decrypt master secret with KMS")
	})

	t.Run("Error_UnwrappedSecretTooShort", func(t *testing.T) {
		keeper := &fakeKeeper{plaintext: []byte("tiny")}

		ms, err := LoadMasterSecretWithKMS(ctx, keeper, wrapped)
		assert.Nil(t, ms)
		assert.ErrorIs(t, err, ErrMasterSecretTooShort)
	})

	t.Run("Error_EmptyCiphertext", func(t *testing.T) {
		ms, err := LoadMasterSecretWithKMS(ctx, &fakeKeeper{}, "")
		assert.Nil(t, ms)
		assert.ErrorIs(t, err, ErrMasterSecretNotSet)
	})
}

func TestMasterSecret_Close(t *testing.T) {
	key := bytes.Repeat([]byte{0x09}, 32)
	ms := &MasterSecret{Key: key}

	ms.Close()

	assert.Nil(t, ms.Key)
	assert.Equal(t, make([]byte, 32), key)
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("aes-gcm")
	require.NoError(t, err)
	assert.Equal(t, AESGCM, alg)

	alg, err = ParseAlgorithm("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, alg)

	_, err = ParseAlgorithm("des")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
