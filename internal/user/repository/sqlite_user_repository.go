package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/user/domain"

	apperrors "github.com/allisson/identity/internal/errors"
)

// SQLiteUserRepository handles user persistence for the embedded SQLite engine.
// IDs are stored as canonical UUID text.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email lookup hash returns ErrUserAlreadyExists.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	p := user.Profile
	_, err := querier.ExecContext(ctx, query,
		p.UserID.String(), p.Username, p.EncryptedFirstname, p.EncryptedLastname, p.EncryptedEmail,
		p.EmailLookupHash, user.Credential.PasswordHash, p.CreatedAt.UTC(),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// ExistsByEmailHash reports whether a user with the lookup hash exists.
func (r *SQLiteUserRepository) ExistsByEmailHash(ctx context.Context, emailHash string) (bool, error) {
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
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE id = ?`

	user, err := scanSQLiteUser(querier.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByEmailHash retrieves a user by email lookup hash
func (r *SQLiteUserRepository) GetByEmailHash(ctx context.Context, emailHash string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, encrypted_firstname, encrypted_lastname, encrypted_email,
			  email_lookup_hash, password_hash, created_at
			  FROM users WHERE email_lookup_hash = ?`

	user, err := scanSQLiteUser(querier.QueryRowContext(ctx, query, emailHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email hash")
	}
	return user, nil
}

func scanSQLiteUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var id string
	p := &user.Profile

	err := row.Scan(
		&id, &p.Username, &p.EncryptedFirstname, &p.EncryptedLastname, &p.EncryptedEmail,
		&p.EmailLookupHash, &user.Credential.PasswordHash, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.UserID, err = uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse UUID")
	}
	user.Credential.UserID = p.UserID
	return &user, nil
}

// isSQLiteUniqueViolation checks if the error is a SQLite UNIQUE constraint failure
func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
