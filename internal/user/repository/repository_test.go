package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/identity/internal/database"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/user/domain"
)

type userRepository interface {
	Create(ctx context.Context, user *domain.User) error
	ExistsByEmailHash(ctx context.Context, emailHash string) (bool, error)
	GetByEmailHash(ctx context.Context, emailHash string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func newTestUser(emailHash string) *domain.User {
	id := uuid.Must(uuid.NewV7())
	return &domain.User{
		Profile: domain.EncryptedProfile{
			UserID:             id,
			Username:           "ann",
			EncryptedFirstname: "Zmlyc3RuYW1lLWJsb2I=",
			EncryptedLastname:  "bGFzdG5hbWUtYmxvYg==",
			EncryptedEmail:     "ZW1haWwtYmxvYg==",
			EmailLookupHash:    emailHash,
			CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
		},
		Credential: domain.Credential{
			UserID:       id,
			PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$ZGlnZXN0",
		},
	}
}

// testUserRepository runs the behaviour every backend must share against a migrated,
// empty database.
func testUserRepository(t *testing.T, repo userRepository, txManager database.TxManager) {
	ctx := context.Background()

	t.Run("Success_CreateAndGetByID", func(t *testing.T) {
		user := newTestUser("hash-by-id")
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByID(ctx, user.ID())
		require.NoError(t, err)
		assert.Equal(t, user.Profile.UserID, got.Profile.UserID)
		assert.Equal(t, user.Profile.Username, got.Profile.Username)
		assert.Equal(t, user.Profile.EncryptedFirstname, got.Profile.EncryptedFirstname)
		assert.Equal(t, user.Profile.EncryptedLastname, got.Profile.EncryptedLastname)
		assert.Equal(t, user.Profile.EncryptedEmail, got.Profile.EncryptedEmail)
		assert.Equal(t, user.Profile.EmailLookupHash, got.Profile.EmailLookupHash)
		assert.Equal(t, user.Credential, got.Credential)
		assert.WithinDuration(t, user.Profile.CreatedAt, got.Profile.CreatedAt, time.Second)
	})

	t.Run("Success_GetByEmailHash", func(t *testing.T) {
		user := newTestUser("hash-by-email")
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByEmailHash(ctx, "hash-by-email")
		require.NoError(t, err)
		assert.Equal(t, user.ID(), got.ID())
	})

	t.Run("Success_ExistsByEmailHash", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestUser("hash-exists")))

		exists, err := repo.ExistsByEmailHash(ctx, "hash-exists")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmailHash(ctx, "hash-missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Failure_DuplicateEmailHash", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestUser("hash-duplicate")))

		err := repo.Create(ctx, newTestUser("hash-duplicate"))
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.GetByEmailHash(ctx, "hash-nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Success_CreateInsideTransaction", func(t *testing.T) {
		user := newTestUser("hash-tx")
		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, user)
		})
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, user.ID())
		assert.NoError(t, err)
	})

	t.Run("Success_RollbackDiscardsUser", func(t *testing.T) {
		user := newTestUser("hash-rollback")
		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := repo.Create(ctx, user); err != nil {
				return err
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		_, err = repo.GetByID(ctx, user.ID())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
