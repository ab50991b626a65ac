package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/user/domain"

	apperrors "github.com/allisson/identity/internal/errors"
)

const mysqlDuplicateEntry = 1062

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email lookup hash returns ErrUserAlreadyExists.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.Profile.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	p := user.Profile
	_, err = querier.ExecContext(ctx, query,
		uuidBytes, p.Username, p.EncryptedFirstname, p.EncryptedLastname, p.EncryptedEmail,
		p.EmailLookupHash, user.Credential.PasswordHash, p.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// ExistsByEmailHash reports whether a user with the lookup hash exists.
func (r *MySQLUserRepository) ExistsByEmailHash(ctx context.Context, emailHash string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email_lookup_hash = ?)`, emailHash,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByEmailHash retrieves a user by email lookup hash
func (r *MySQLUserRepository) GetByEmailHash(ctx context.Context, emailHash string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE email_lookup_hash = ?`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, emailHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email hash")
	}
	return user, nil
}

func scanMySQLUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	p := &user.Profile

	err := row.Scan(
		&idBytes, &p.Username, &p.EncryptedFirstname, &p.EncryptedLastname, &p.EncryptedEmail,
		&p.EmailLookupHash, &user.Credential.PasswordHash, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert bytes back to UUID
	if err := p.UserID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	user.Credential.UserID = p.UserID
	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
