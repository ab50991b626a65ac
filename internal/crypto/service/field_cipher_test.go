package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func newTestFieldCipher(t *testing.T, alg cryptoDomain.Algorithm) *FieldCipherService {
	t.Helper()
	fc, err := NewFieldCipher(NewAEADManager(), alg)
	require.NoError(t, err)
	return fc
}

func TestNewFieldCipher(t *testing.T) {
	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		fc, err := NewFieldCipher(NewAEADManager(), cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
		assert.Nil(t, fc)
	})
}

func TestFieldCipherService_RoundTrip(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.ChaCha20, cryptoDomain.AESGCM} {
		t.Run(string(alg), func(t *testing.T) {
			fc := newTestFieldCipher(t, alg)
			key := newTestKey(t)

			for _, plaintext := range []string{"Ann", "", "Lee-Ångström", "ann@example.com"} {
				blob, err := fc.Encrypt(key, plaintext)
				require.NoError(t, err)

				raw, err := base64.StdEncoding.DecodeString(blob)
				require.NoError(t, err)
				assert.Len(t, raw, cryptoDomain.NonceSize+len(plaintext)+cryptoDomain.TagSize)

				got, err := fc.Decrypt(key, blob)
				require.NoError(t, err)
				assert.Equal(t, plaintext, got)
			}
		})
	}
}

func TestFieldCipherService_Encrypt(t *testing.T) {
	fc := newTestFieldCipher(t, cryptoDomain.ChaCha20)
	key := newTestKey(t)

	t.Run("same plaintext encrypts differently", func(t *testing.T) {
		b1, err := fc.Encrypt(key, "Ann")
		require.NoError(t, err)
		b2, err := fc.Encrypt(key, "Ann")
		require.NoError(t, err)

		assert.NotEqual(t, b1, b2)
	})

	t.Run("Error_InvalidKeySize", func(t *testing.T) {
		blob, err := fc.Encrypt(make([]byte, 16), "Ann")
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
		assert.Empty(t, blob)
	})
}

func TestFieldCipherService_Decrypt(t *testing.T) {
	fc := newTestFieldCipher(t, cryptoDomain.ChaCha20)
	key := newTestKey(t)

	blob, err := fc.Encrypt(key, "Ann")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := fc.Decrypt(newTestKey(t), blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("every single-bit flip is rejected", func(t *testing.T) {
		for i := range raw {
			for bit := range 8 {
				tampered := make([]byte, len(raw))
				copy(tampered, raw)
				tampered[i] ^= 1 << bit

				_, err := fc.Decrypt(key, base64.StdEncoding.EncodeToString(tampered))
				require.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, "byte %d bit %d", i, bit)
			}
		}
	})

	t.Run("every single-bit flip of the blob text is rejected", func(t *testing.T) {
		// Lengths chosen so the blobs end in "==", "=" and no padding.
		for _, plaintext := range []string{"Lee", "Annabel", "Al", "ann@example.com"} {
			text, err := fc.Encrypt(key, plaintext)
			require.NoError(t, err)

			for i := range len(text) {
				for bit := range 8 {
					tampered := []byte(text)
					tampered[i] ^= 1 << bit

					got, err := fc.Decrypt(key, string(tampered))
					require.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed,
						"plaintext %q char %d bit %d decrypted to %q", plaintext, i, bit, got)
				}
			}
		}
	})

	t.Run("non-zero padding bits", func(t *testing.T) {
		text, err := fc.Encrypt(key, "Lee")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(text, "=="))

		// The character before "==" carries 4 unused low bits.
		tampered := []byte(text)
		idx := len(tampered) - 3
		pos := strings.IndexByte(base64Alphabet, tampered[idx])
		require.GreaterOrEqual(t, pos, 0)
		tampered[idx] = base64Alphabet[pos^0x01]

		_, err = fc.Decrypt(key, string(tampered))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("embedded line break", func(t *testing.T) {
		_, err := fc.Decrypt(key, blob[:8]+"\n"+blob[8:])
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		_, err = fc.Decrypt(key, blob+"\r\n")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("truncated blob", func(t *testing.T) {
		for _, n := range []int{0, 1, cryptoDomain.NonceSize, cryptoDomain.NonceSize + cryptoDomain.TagSize - 1} {
			_, err := fc.Decrypt(key, base64.StdEncoding.EncodeToString(raw[:n]))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		}
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := fc.Decrypt(key, "***not base64***")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("blob from other algorithm", func(t *testing.T) {
		aesBlob, err := newTestFieldCipher(t, cryptoDomain.AESGCM).Encrypt(key, "Ann")
		require.NoError(t, err)

		_, err = fc.Decrypt(key, aesBlob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("invalid key size", func(t *testing.T) {
		_, err := fc.Decrypt(make([]byte, 8), blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestFieldCipherService_WithDerivedKeys(t *testing.T) {
	fc := newTestFieldCipher(t, cryptoDomain.ChaCha20)
	kd := newTestKeyDeriver(t, newTestKey(t))

	keyA, err := kd.DeriveKey("user-a")
	require.NoError(t, err)
	keyB, err := kd.DeriveKey("user-b")
	require.NoError(t, err)

	blob, err := fc.Encrypt(keyA, "Lee")
	require.NoError(t, err)

	got, err := fc.Decrypt(keyA, blob)
	require.NoError(t, err)
	assert.Equal(t, "Lee", got)

	_, err = fc.Decrypt(keyB, blob)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
}
