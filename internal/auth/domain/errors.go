package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// Authentication errors.
//
// ErrInvalidCredentials and ErrInvalidToken both map to a bare 401; neither tells the
// client which check failed.
var (
	// ErrInvalidCredentials indicates an unknown account or a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a bad signature, malformed structure, wrong algorithm or expiry.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrHashingFailed indicates the password hasher could not produce a hash.
	ErrHashingFailed = errors.New("password hashing failed")

	// ErrInvalidHashFormat indicates a stored password hash could not be parsed.
	ErrInvalidHashFormat = errors.New("invalid password hash format")

	// ErrInvalidHashParams indicates Argon2 cost parameters or the hash policy are invalid.
	ErrInvalidHashParams = errors.Wrap(errors.ErrConfiguration, "invalid password hash parameters")

	// ErrTokenSecretNotSet indicates the token signing secret is empty.
	ErrTokenSecretNotSet = errors.Wrap(errors.ErrConfiguration, "token signing secret is not set")

	// ErrInvalidTokenLifetime indicates a non-positive token lifetime.
	ErrInvalidTokenLifetime = errors.Wrap(errors.ErrConfiguration, "token lifetime must be positive")
)
