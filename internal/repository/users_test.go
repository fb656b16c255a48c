package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/taletrail/internal/models"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	ann := UserRecord{User: models.User{ID: "u1", Email: "ann@example.com", Username: "ann"}, PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, ann))

	t.Run("duplicates conflict", func(t *testing.T) {
		err := repo.Create(ctx, UserRecord{User: models.User{ID: "u2", Email: "ANN@example.com", Username: "other"}})
		assert.ErrorIs(t, err, ErrConflict)
		err = repo.Create(ctx, UserRecord{User: models.User{ID: "u2", Email: "x@example.com", Username: "Ann"}})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("lookups", func(t *testing.T) {
		u, err := repo.ByEmail(ctx, "Ann@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "h1", u.PasswordHash)

		u, err = repo.ByUsername(ctx, "ANN")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)

		_, err = repo.ByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update profile", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, UserRecord{User: models.User{ID: "u3", Email: "bob@example.com", Username: "bob"}}))

		_, err := repo.UpdateProfile(ctx, "u1", models.ProfileUpdate{FullName: "Ann", Username: "bob"}, "t")
		assert.ErrorIs(t, err, ErrConflict)

		u, err := repo.UpdateProfile(ctx, "u1", models.ProfileUpdate{FullName: "Ann Lee", Username: "annlee", Bio: "reader"}, "2024-01-01T00:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, "annlee", u.Username)
		assert.Equal(t, "reader", u.Bio)
		assert.Equal(t, "2024-01-01T00:00:00Z", u.UpdatedAt)

		_, err = repo.UpdateProfile(ctx, "ghost", models.ProfileUpdate{Username: "g"}, "t")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
