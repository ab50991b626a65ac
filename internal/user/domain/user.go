// Package domain defines the user aggregate: the encrypted profile, the password
// credential and the decrypted view returned to the account owner.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/errors"
)

// Credential is the password credential of a user. Immutable after creation.
type Credential struct {
	UserID       uuid.UUID
	PasswordHash string
}

// EncryptedProfile holds the personal fields of a user, each encrypted separately
// under the user's derived key with its own nonce.
//
// Username is a public handle and is stored in clear. EmailLookupHash is the only
// way to find a profile by email.
type EncryptedProfile struct {
	UserID             uuid.UUID
	Username           string
	EncryptedFirstname string
	EncryptedLastname  string
	EncryptedEmail     string
	EmailLookupHash    string
	CreatedAt          time.Time
}

// User is the stored aggregate: profile and credential share the user ID.
type User struct {
	Profile    EncryptedProfile
	Credential Credential
}

// ID returns the user ID.
func (u *User) ID() uuid.UUID {
	return u.Profile.UserID
}

// Profile is the decrypted view of a user, returned only to its owner.
type Profile struct {
	ID        uuid.UUID
	Username  string
	Firstname string
	Lastname  string
	Email     string
	CreatedAt time.Time
}

// RegisterInput contains the fields accepted at registration.
type RegisterInput struct {
	Firstname string
	Lastname  string
	Username  string
	Password  string
	Email     string
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email lookup hash already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrProfileCorrupted indicates a stored profile failed to decrypt under its derived key.
	// It means key mismatch or data corruption, never a client error.
	ErrProfileCorrupted = errors.New("stored profile failed integrity check")
)
