package db

import (
	"context"
	"testing"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerTokenRepository(t *testing.T) {
	path := t.TempDir()
	db, err := OpenBadger(path)
	require.NoError(t, err)

	repo := NewBadgerTokenRepository(db)
	ctx := context.Background()

	t.Run("Empty store", func(t *testing.T) {
		creds, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.True(t, creds.IsZero())
	})

	t.Run("Save and load", func(t *testing.T) {
		want := entity.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Replace access token only", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, entity.Credentials{AccessToken: "access-2", RefreshToken: "refresh-1"}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-2", got.AccessToken)
		assert.Equal(t, "refresh-1", got.RefreshToken)
	})

	t.Run("Empty token removes key", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, entity.Credentials{AccessToken: "access-3"}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-3", got.AccessToken)
		assert.Empty(t, got.RefreshToken)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, entity.Credentials{AccessToken: "a", RefreshToken: "r"}))
		require.NoError(t, repo.Clear(ctx))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("Survives reopen", func(t *testing.T) {
		want := entity.Credentials{AccessToken: "persisted-a", RefreshToken: "persisted-r"}
		require.NoError(t, repo.Save(ctx, want))
		require.NoError(t, db.Close())

		reopened, err := OpenBadger(path)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := NewBadgerTokenRepository(reopened).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
