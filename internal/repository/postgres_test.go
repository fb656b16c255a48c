package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/atinyakov/taletrail/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

var userRowColumns = []string{"id", "email", "username", "full_name", "bio", "avatar_url", "password_hash", "created_at", "updated_at"}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	u := UserRecord{User: models.User{ID: "u1", Email: "ann@example.com", Username: "ann", FullName: "Ann"}, PasswordHash: "hash"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, username, full_name, bio, avatar_url, password_hash)`)).
		WithArgs("u1", "ann@example.com", "ann", "Ann", "", "", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresCreate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"unique violation", &pq.Error{Code: uniqueViolation}, ErrConflict},
		{"other failure", errors.New("insert failed"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserMock(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(tc.dbErr)

			err := repo.Create(context.Background(), UserRecord{User: models.User{ID: "u1"}})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestPostgresByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE lower(email) = lower($1)`)).
		WithArgs("Ann@Example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "ann@example.com", "ann", "Ann", "", "", "hash", created, created))

	u, err := repo.ByEmail(context.Background(), "Ann@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || u.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.CreatedAt != "2024-05-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q", u.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresLookups_NotFound(t *testing.T) {
	cases := []struct {
		name  string
		query string
		call  func(r *PostgresUserRepository) error
	}{
		{"by id", `FROM users WHERE id = $1`, func(r *PostgresUserRepository) error {
			_, err := r.ByID(context.Background(), "missing")
			return err
		}},
		{"by email", `FROM users WHERE lower(email) = lower($1)`, func(r *PostgresUserRepository) error {
			_, err := r.ByEmail(context.Background(), "missing@example.com")
			return err
		}},
		{"by username", `FROM users WHERE lower(username) = lower($1)`, func(r *PostgresUserRepository) error {
			_, err := r.ByUsername(context.Background(), "missing")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserMock(t)
			defer cleanup()

			mock.ExpectQuery(regexp.QuoteMeta(tc.query)).WillReturnError(sql.ErrNoRows)

			if err := tc.call(repo); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestPostgresUpdateProfile(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET full_name = $2, username = $3, bio = $4, avatar_url = $5, updated_at = now() WHERE id = $1`)).
		WithArgs("u1", "Ann Lee", "annlee", "hi", "").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "ann@example.com", "annlee", "Ann Lee", "hi", "", "hash", now, now))

	u, err := repo.UpdateProfile(context.Background(), "u1", models.ProfileUpdate{FullName: "Ann Lee", Username: "annlee", Bio: "hi"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "annlee" || u.Bio != "hi" {
		t.Errorf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresUpdateProfile_UsernameTaken(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.UpdateProfile(context.Background(), "u1", models.ProfileUpdate{FullName: "A", Username: "bob"}, "")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
