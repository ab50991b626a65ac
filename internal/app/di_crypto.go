package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
	cryptoService "github.com/allisson/identity/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap the master secret.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterSecret returns the decoded server master secret.
func (c *Container) MasterSecret() (*cryptoDomain.MasterSecret, error) {
	var err error
	c.masterSecretInit.Do(func() {
		c.masterSecret, err = c.initMasterSecret()
		if err != nil {
			c.setInitError("masterSecret", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.masterSecret, c.initError("masterSecret")
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the per-user key deriver.
func (c *Container) KeyDeriver() (cryptoService.KeyDeriver, error) {
	var err error
	c.keyDeriverInit.Do(func() {
		c.keyDeriver, err = c.initKeyDeriver()
		if err != nil {
			c.setInitError("keyDeriver", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.keyDeriver, c.initError("keyDeriver")
}

// FieldCipher returns the profile field cipher.
func (c *Container) FieldCipher() (cryptoService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.setInitError("fieldCipher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.fieldCipher, c.initError("fieldCipher")
}

// EmailIndexer returns the email lookup hasher.
func (c *Container) EmailIndexer() (cryptoService.EmailIndexer, error) {
	var err error
	c.emailIndexerInit.Do(func() {
		c.emailIndexer, err = c.initEmailIndexer()
		if err != nil {
			c.setInitError("emailIndexer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.emailIndexer, c.initError("emailIndexer")
}

// initMasterSecret decodes MASTER_ENCRYPTION_KEY, going through the KMS when a key URI is configured.
func (c *Container) initMasterSecret() (*cryptoDomain.MasterSecret, error) {
	masterSecret, err := cryptoService.LoadMasterSecret(
		context.Background(),
		c.KMSService(),
		c.config.KMSKeyURI,
		c.config.MasterEncryptionKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load master secret: %w", err)
	}

	c.Logger().Info("master secret loaded",
		"kms_provider", c.config.KMSProvider,
		"kms_enabled", c.config.KMSKeyURI != "",
	)
	return masterSecret, nil
}

func (c *Container) initKeyDeriver() (cryptoService.KeyDeriver, error) {
	masterSecret, err := c.MasterSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret for key deriver: %w", err)
	}
	keyDeriver, err := cryptoService.NewKeyDeriver(masterSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create key deriver: %w", err)
	}
	return keyDeriver, nil
}

func (c *Container) initFieldCipher() (cryptoService.FieldCipher, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.FieldCipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse field cipher algorithm: %w", err)
	}
	fieldCipher, err := cryptoService.NewFieldCipher(c.AEADManager(), alg)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}
	return fieldCipher, nil
}

func (c *Container) initEmailIndexer() (cryptoService.EmailIndexer, error) {
	emailIndexer, err := cryptoService.NewEmailIndexer(c.config.EmailHashSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to create email indexer: %w", err)
	}
	return emailIndexer, nil
}
