package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens keepers used to wrap and unwrap the master secret.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for keyURI.
	OpenKeeper(ctx context.Context, keyURI string) (*secrets.Keeper, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadMasterSecret loads the master secret, unwrapping it through the KMS when keyURI is set.
func LoadMasterSecret(
	ctx context.Context,
	kms KMSService,
	keyURI, encoded string,
) (*cryptoDomain.MasterSecret, error) {
	if keyURI == "" {
		return cryptoDomain.LoadMasterSecret(encoded)
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	return cryptoDomain.LoadMasterSecretWithKMS(ctx, keeper, encoded)
}
