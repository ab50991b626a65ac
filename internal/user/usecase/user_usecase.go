package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	authService "github.com/allisson/identity/internal/auth/service"
	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
	cryptoService "github.com/allisson/identity/internal/crypto/service"
	"github.com/allisson/identity/internal/database"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/user/domain"
	appValidation "github.com/allisson/identity/internal/validation"
)

// dummyPassword is hashed once and verified against when an account is unknown.
const dummyPassword = "identity-dummy-password"

// userUseCase implements UseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	keyDeriver     cryptoService.KeyDeriver
	fieldCipher    cryptoService.FieldCipher
	emailIndexer   cryptoService.EmailIndexer
	passwordHasher authService.PasswordHasher
	tokenService   authService.TokenService
	logger         *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserUseCase creates a new UseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	keyDeriver cryptoService.KeyDeriver,
	fieldCipher cryptoService.FieldCipher,
	emailIndexer cryptoService.EmailIndexer,
	passwordHasher authService.PasswordHasher,
	tokenService authService.TokenService,
	logger *slog.Logger,
) UseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		keyDeriver:     keyDeriver,
		fieldCipher:    fieldCipher,
		emailIndexer:   emailIndexer,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
		logger:         logger,
	}
}

func validateRegisterInput(input domain.RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Firstname,
			validation.Required.Error("firstname is required"),
			appValidation.NotBlank,
			appValidation.ValidUTF8,
			validation.RuneLength(1, 255).Error("firstname must be between 1 and 255 characters"),
		),
		validation.Field(&input.Lastname,
			validation.Required.Error("lastname is required"),
			appValidation.NotBlank,
			appValidation.ValidUTF8,
			validation.RuneLength(1, 255).Error("lastname must be between 1 and 255 characters"),
		),
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NoWhitespace,
			appValidation.ValidUTF8,
			validation.RuneLength(1, 64).Error("username must be between 1 and 64 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a user. The existence check is advisory; the store's unique
// constraint on the lookup hash decides concurrent registrations.
func (u *userUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	lookupHash := u.emailIndexer.LookupHash(email)

	exists, err := u.userRepo.ExistsByEmailHash(ctx, lookupHash)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate user id")
	}

	profile, err := u.encryptProfile(userID, input.Firstname, input.Lastname, email)
	if err != nil {
		return nil, err
	}
	profile.Username = input.Username
	profile.EmailLookupHash = lookupHash
	profile.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	passwordHash, err := u.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Profile: *profile,
		Credential: domain.Credential{
			UserID:       userID,
			PasswordHash: passwordHash,
		},
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// encryptProfile encrypts the personal fields under the key derived for userID.
// The derived key is zeroed before returning.
func (u *userUseCase) encryptProfile(userID uuid.UUID, firstname, lastname, email string) (*domain.EncryptedProfile, error) {
	key, err := u.keyDeriver.DeriveKey(userID.String())
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	profile := &domain.EncryptedProfile{UserID: userID}
	fields := []struct {
		plaintext string
		dst       *string
	}{
		{firstname, &profile.EncryptedFirstname},
		{lastname, &profile.EncryptedLastname},
		{email, &profile.EncryptedEmail},
	}
	for _, f := range fields {
		blob, err := u.fieldCipher.Encrypt(key, f.plaintext)
		if err != nil {
			return nil, err
		}
		*f.dst = blob
	}
	return profile, nil
}

// Authenticate verifies credentials and issues a token whose subject is the user ID.
func (u *userUseCase) Authenticate(ctx context.Context, email, password string) (*authDomain.Token, error) {
	user, err := u.userRepo.GetByEmailHash(ctx, u.emailIndexer.LookupHash(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.verifyDummy(password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := u.passwordHasher.Verify(password, user.Credential.PasswordHash)
	if err != nil {
		u.logger.Error("stored password hash is unreadable",
			slog.String("user_id", user.ID().String()),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	return u.tokenService.Issue(user.ID().String())
}

// verifyDummy spends the same work as a real verification so unknown accounts
// cannot be told apart by response time.
func (u *userUseCase) verifyDummy(password string) {
	u.dummyOnce.Do(func() {
		hash, err := u.passwordHasher.Hash(dummyPassword)
		if err != nil {
			u.logger.Error("failed to prepare dummy password hash", slog.Any("error", err))
			return
		}
		u.dummyHash = hash
	})
	if u.dummyHash == "" {
		return
	}
	_, _ = u.passwordHasher.Verify(password, u.dummyHash)
}

// GetProfile decrypts the stored profile. A field that fails authentication is an
// integrity anomaly and surfaces as ErrProfileCorrupted.
func (u *userUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := u.keyDeriver.DeriveKey(userID.String())
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	p := user.Profile
	profile := &domain.Profile{
		ID:        p.UserID,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
	}
	fields := []struct {
		name string
		blob string
		dst  *string
	}{
		{"firstname", p.EncryptedFirstname, &profile.Firstname},
		{"lastname", p.EncryptedLastname, &profile.Lastname},
		{"email", p.EncryptedEmail, &profile.Email},
	}
	for _, f := range fields {
		plaintext, err := u.fieldCipher.Decrypt(key, f.blob)
		if err != nil {
			u.logger.Error("profile field failed integrity check",
				slog.String("user_id", userID.String()),
				slog.String("field", f.name),
				slog.Any("error", err),
			)
			return nil, errors.Join(domain.ErrProfileCorrupted, err)
		}
		*f.dst = plaintext
	}

	return profile, nil
}
