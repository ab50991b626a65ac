// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/user/domain"

	apperrors "github.com/allisson/identity/internal/errors"
)

const postgresUniqueViolation = "23505"

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email lookup hash returns ErrUserAlreadyExists.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	p := user.Profile
	_, err := querier.ExecContext(ctx, query,
		p.UserID, p.Username, p.EncryptedFirstname, p.EncryptedLastname, p.EncryptedEmail,
		p.EmailLookupHash, user.Credential.PasswordHash, p.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// ExistsByEmailHash reports whether a user with the lookup hash exists.
func (r *PostgreSQLUserRepository) ExistsByEmailHash(ctx context.Context, emailHash string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email_lookup_hash = $1)`, emailHash,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE id = $1`

	user, err := scanPostgreSQLUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByEmailHash retrieves a user by email lookup hash
func (r *PostgreSQLUserRepository) GetByEmailHash(ctx context.Context, emailHash string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE email_lookup_hash = $1`

	user, err := scanPostgreSQLUser(querier.QueryRowContext(ctx, query, emailHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email hash")
	}
	return user, nil
}

func scanPostgreSQLUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	p := &user.Profile

	err := row.Scan(
		&p.UserID, &p.Username, &p.EncryptedFirstname, &p.EncryptedLastname, &p.EncryptedEmail,
		&p.EmailLookupHash, &user.Credential.PasswordHash, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Credential.UserID = p.UserID
	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation
}
