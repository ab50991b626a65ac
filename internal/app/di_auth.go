package app

import (
	"fmt"

	authHTTP "github.com/allisson/identity/internal/auth/http"
	authService "github.com/allisson/identity/internal/auth/service"
	"github.com/allisson/identity/internal/http"
)

// PasswordHasher returns the Argon2id password hasher.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = c.initPasswordHasher()
		if err != nil {
			c.setInitError("passwordHasher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.passwordHasher, c.initError("passwordHasher")
}

// TokenService returns the bearer token issuer and validator.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.setInitError("tokenService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.tokenService, c.initError("tokenService")
}

// Gate returns the authentication gate guarding every non-public route.
func (c *Container) Gate() (*authHTTP.Gate, error) {
	var err error
	c.gateInit.Do(func() {
		c.gate, err = c.initGate()
		if err != nil {
			c.setInitError("gate", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.gate, c.initError("gate")
}

func (c *Container) initPasswordHasher() (authService.PasswordHasher, error) {
	params := authService.DefaultArgon2Params()
	params.MemoryKiB = uint32(max(c.config.Argon2MemoryKiB, 0))
	params.Iterations = uint32(max(c.config.Argon2Iterations, 0))
	params.Parallelism = uint8(min(max(c.config.Argon2Parallelism, 0), 255))

	hasher, err := authService.NewPasswordHasher(c.config.PasswordHashPolicy, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	return hasher, nil
}

func (c *Container) initTokenService() (authService.TokenService, error) {
	tokenService, err := authService.NewTokenService(c.config.TokenSigningSecret, c.config.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}

func (c *Container) initGate() (*authHTTP.Gate, error) {
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for gate: %w", err)
	}
	return authHTTP.NewGate(tokenService, http.PublicPaths), nil
}
