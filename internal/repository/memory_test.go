package repository

import (
	"context"
	"testing"
	"time"

	"frontdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		session := &models.Session{ID: "abc", Email: "desk@hotel.test", Kind: "session"}
		require.NoError(t, repo.Set(ctx, session))

		got, err := repo.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "desk@hotel.test", got.Email)
		assert.False(t, got.ExpiresAt.IsZero(), "default TTL applied")
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, &models.Session{ID: "gone"}))
		require.NoError(t, repo.Delete(ctx, "gone"))
		got, _ := repo.Get(ctx, "gone")
		assert.Nil(t, got)
	})

	t.Run("ExpiredEntryEvicted", func(t *testing.T) {
		session := &models.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}
		require.NoError(t, repo.Set(ctx, session))

		got, err := repo.Get(ctx, "old")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
