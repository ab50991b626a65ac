// Package domain defines the cryptographic primitives shared by the identity core:
// AEAD algorithm identifiers, key material sizes and the server master secret.
package domain

// Algorithm represents the AEAD used to protect profile fields.
//
// Both supported algorithms take a 256-bit key, a 96-bit nonce and append a
// 128-bit authentication tag, so stored blobs have the same layout for either.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Default algorithm; constant-time in software.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the size in bytes of every symmetric key: the master secret
	// minimum and every derived field key.
	KeySize = 32

	// NonceSize is the AEAD nonce size in bytes.
	NonceSize = 12

	// TagSize is the AEAD authentication tag size in bytes.
	TagSize = 16

	// FieldKeyInfo is the HKDF context label for per-user field keys. Changing it
	// makes every stored profile undecryptable.
	FieldKeyInfo = "identity-field-key-v1"
)

// ParseAlgorithm maps a configuration value to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
