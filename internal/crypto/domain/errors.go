package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// Cryptographic error definitions.
//
// Encryption and decryption failures are not client errors: they either mean the
// CSPRNG is broken or that stored data no longer authenticates. Both surface as
// 500 responses; the cause is never disclosed.
var (
	// ErrUnsupportedAlgorithm indicates FIELD_CIPHER_ALGORITHM is not a known AEAD.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrConfiguration, "unsupported algorithm")

	// ErrInvalidKeySize indicates a symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrMasterSecretNotSet indicates the master secret is empty.
	ErrMasterSecretNotSet = errors.Wrap(errors.ErrConfiguration, "master secret is not set")

	// ErrMasterSecretTooShort indicates the decoded master secret has less than 32 bytes.
	ErrMasterSecretTooShort = errors.Wrap(errors.ErrConfiguration, "master secret must be at least 32 bytes")

	// ErrInvalidMasterSecretBase64 indicates the master secret is not valid standard base64.
	ErrInvalidMasterSecretBase64 = errors.Wrap(errors.ErrConfiguration, "master secret is not valid base64")

	// ErrEmailHashSaltNotSet indicates the email lookup salt is empty.
	ErrEmailHashSaltNotSet = errors.Wrap(errors.ErrConfiguration, "email hash salt is not set")

	// ErrKeyDerivationFailed indicates HKDF could not produce a key.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrEncryptionFailed indicates a field could not be encrypted (nonce generation or AEAD setup).
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates a blob failed to decode or authenticate.
	//
	// Malformed base64, truncation, a flipped bit and a wrong key are
	// indistinguishable to the caller.
	ErrDecryptionFailed = errors.New("decryption failed")
)
