// Package usecase implements the user business logic: registration, password
// authentication and the owner's decrypted profile.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/user/domain"
)

// UserRepository defines persistence operations for users.
// Implementations return domain.ErrUserNotFound for missing rows and
// domain.ErrUserAlreadyExists when the email lookup hash is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	ExistsByEmailHash(ctx context.Context, emailHash string) (bool, error)
	GetByEmailHash(ctx context.Context, emailHash string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UseCase defines the user business logic operations.
type UseCase interface {
	// Register validates input, encrypts the profile under a freshly derived key,
	// hashes the password and stores the user.
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)

	// Authenticate verifies an email/password pair and issues a bearer token.
	// Unknown accounts and wrong passwords are indistinguishable.
	Authenticate(ctx context.Context, email, password string) (*authDomain.Token, error)

	// GetProfile loads and decrypts the profile of userID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}
