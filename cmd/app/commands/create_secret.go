package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
	cryptoService "github.com/allisson/identity/internal/crypto/service"
)

// minSecretSize is the smallest secret accepted; it matches the master secret length.
const minSecretSize = 32

// ErrSecretTooShort is returned when the requested secret size is below minSecretSize.
var ErrSecretTooShort = errors.New("secret size must be at least 32 bytes")

// RunCreateSecret writes a fresh random base64 secret of size bytes to out.
//
// When kmsKeyURI is set the secret is encrypted with that KMS key and the base64
// ciphertext is written together with the KMS_KEY_URI line needed to unwrap it at
// start-up. Local development can use kmsKeyURI="base64key://<32-byte-url-safe-base64>".
func RunCreateSecret(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	out io.Writer,
	size int,
	kmsKeyURI string,
) error {
	if size < minSecretSize {
		return ErrSecretTooShort
	}

	secret := make([]byte, size)
	defer cryptoDomain.Zero(secret)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if kmsKeyURI == "" {
		_, err := fmt.Fprintf(out, "%s\n", base64.StdEncoding.EncodeToString(secret))
		return err
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret with KMS: %w", err)
	}

	_, err = fmt.Fprintf(out,
		"# Secret wrapped by KMS; set KMS_KEY_URI so the server can unwrap it\nKMS_KEY_URI=%q\nSECRET=%q\n",
		kmsKeyURI,
		base64.StdEncoding.EncodeToString(ciphertext),
	)
	return err
}
