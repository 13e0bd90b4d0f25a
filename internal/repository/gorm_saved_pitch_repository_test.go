package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/testutil"
)

func TestGormSavedPitchRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSavedPitchRepository(db)
	notifications := NewGormNotificationRepository(db)
	ctx := context.Background()

	pitch := seedPitch(t, db, models.Startup{FounderID: "founder-1", Name: "Ledger"}, models.Pitch{Description: "payments"})

	t.Run("save emits one notification", func(t *testing.T) {
		err := repo.Save(ctx,
			&models.SavedPitch{InvestorID: "investor-1", PitchID: pitch.ID},
			&models.Notification{UserID: "founder-1", Message: "saved"})
		require.NoError(t, err)

		list, err := notifications.ListByUser(ctx, "founder-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "saved", list[0].Message)
	})

	t.Run("duplicate save is rejected and rolled back", func(t *testing.T) {
		err := repo.Save(ctx,
			&models.SavedPitch{InvestorID: "investor-1", PitchID: pitch.ID},
			&models.Notification{UserID: "founder-1", Message: "saved again"})
		assert.ErrorIs(t, err, ErrAlreadyExists)

		list, err := notifications.ListByUser(ctx, "founder-1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("list preloads pitch and startup", func(t *testing.T) {
		saved, err := repo.ListByInvestor(ctx, "investor-1")
		require.NoError(t, err)
		require.Len(t, saved, 1)
		require.NotNil(t, saved[0].Pitch)
		assert.Equal(t, pitch.ID, saved[0].Pitch.ID)
		require.NotNil(t, saved[0].Pitch.Startup)
		assert.Equal(t, "Ledger", saved[0].Pitch.Startup.Name)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, "investor-2", pitch.ID), ErrNotFound)
		require.NoError(t, repo.Delete(ctx, "investor-1", pitch.ID))
		assert.ErrorIs(t, repo.Delete(ctx, "investor-1", pitch.ID), ErrNotFound)
	})
}

func TestGormNotificationRepository_MarkRead(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	notice := &models.Notification{UserID: "founder-1", Message: "hello"}
	require.NoError(t, db.Create(notice).Error)

	_, err := repo.MarkRead(ctx, notice.ID, "founder-2")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := repo.MarkRead(ctx, notice.ID, "founder-1")
	require.NoError(t, err)
	assert.True(t, updated.Read)
}

func TestGormFileRepository(t *testing.T) {
	repo := NewGormFileRepository(testutil.NewDB(t))
	ctx := context.Background()

	file := &models.FileRecord{OwnerID: "user-1", Name: "deck.pdf", URL: "http://localhost/uploads/deck.pdf", MimeType: "application/pdf", Size: 42}
	require.NoError(t, repo.Create(ctx, file))
	assert.NotEmpty(t, file.ID)

	files, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "deck.pdf", files[0].Name)

	files, err = repo.ListByOwner(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, files)
}
