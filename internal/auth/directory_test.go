package auth

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDirectory(t *testing.T) *PGDirectory {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("authdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	url, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := ConnectPG(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	dir := NewPGDirectory(pool)
	require.NoError(t, dir.EnsureSchema(ctx))
	return dir
}

func TestPGDirectory(t *testing.T) {
	sut := setupTestDirectory(t)
	ctx := context.Background()

	u := &domain.User{Email: "ann@example.com", FullName: "Ann", Phone: "555"}
	require.NoError(t, sut.Create(ctx, u, "hash"))
	require.NotEmpty(t, u.ID)

	t.Run("duplicate email", func(t *testing.T) {
		err := sut.Create(ctx, &domain.User{Email: "ann@example.com"}, "hash")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("get by email returns hash", func(t *testing.T) {
		got, hash, err := sut.GetByEmail(ctx, "ANN@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "hash", hash)
		assert.False(t, got.IsAdmin)
		assert.Nil(t, got.LastSignInAt)
	})

	t.Run("set admin round trips through app metadata", func(t *testing.T) {
		require.NoError(t, sut.SetAdmin(ctx, u.ID, true))
		got, err := sut.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAdmin)

		require.NoError(t, sut.SetAdmin(ctx, u.ID, false))
		got, err = sut.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, got.IsAdmin)
	})

	t.Run("touch sign in", func(t *testing.T) {
		at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, sut.TouchSignIn(ctx, u.ID, at))
		got, err := sut.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastSignInAt)
		assert.True(t, at.Equal(*got.LastSignInAt))
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := sut.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrUserNotFound)
		_, err = sut.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, sut.SetAdmin(ctx, uuid.NewString(), true), ErrUserNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		users, err := sut.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		require.NoError(t, sut.Delete(ctx, u.ID))
		assert.ErrorIs(t, sut.Delete(ctx, u.ID), ErrUserNotFound)
	})
}
