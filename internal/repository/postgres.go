package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/atinyakov/taletrail/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint.
const uniqueViolation = "23505"

// PostgresUserRepository stores accounts in the users table.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository on an open connection
// whose schema was created by db.InitPostgres.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, email, username, full_name, bio, avatar_url, password_hash, created_at, updated_at`

// Create inserts u. A duplicate email or username yields ErrConflict.
func (r *PostgresUserRepository) Create(ctx context.Context, u UserRecord) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, email, username, full_name, bio, avatar_url, password_hash) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Username, u.FullName, u.Bio, u.AvatarURL, u.PasswordHash,
	)
	return mapError(err)
}

func (r *PostgresUserRepository) ByID(ctx context.Context, id string) (UserRecord, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) ByEmail(ctx context.Context, email string) (UserRecord, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *PostgresUserRepository) ByUsername(ctx context.Context, username string) (UserRecord, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username))
}

// UpdateProfile replaces the editable profile fields of user id. updatedAt
// is ignored; the database clock stamps the row.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate, _ string) (models.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(
		ctx,
		`UPDATE users SET full_name = $2, username = $3, bio = $4, avatar_url = $5, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		id, p.FullName, p.Username, p.Bio, p.AvatarURL,
	))
	if err != nil {
		return models.User{}, err
	}
	return u.User, nil
}

func (r *PostgresUserRepository) scanOne(row *sql.Row) (UserRecord, error) {
	var (
		u                    UserRecord
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return UserRecord{}, mapError(err)
	}
	u.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	u.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return u, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
