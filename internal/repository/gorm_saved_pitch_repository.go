package repository

import (
	"context"
	"fmt"

	"github.com/venturely/venturely/internal/models"
	"gorm.io/gorm"
)

type GormSavedPitchRepository struct {
	db *gorm.DB
}

func NewGormSavedPitchRepository(db *gorm.DB) *GormSavedPitchRepository {
	return &GormSavedPitchRepository{db: db}
}

func (r *GormSavedPitchRepository) Save(ctx context.Context, saved *models.SavedPitch, notice *models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertOnce(tx.Omit("Pitch"), saved); err != nil {
			return err
		}

		if notice != nil {
			if err := tx.Create(notice).Error; err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}

		return nil
	})
}

func (r *GormSavedPitchRepository) Delete(ctx context.Context, investorID, pitchID string) error {
	result := r.db.WithContext(ctx).
		Where("investor_id = ? AND pitch_id = ?", investorID, pitchID).
		Delete(&models.SavedPitch{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete saved pitch: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormSavedPitchRepository) ListByInvestor(ctx context.Context, investorID string) ([]models.SavedPitch, error) {
	saved := []models.SavedPitch{}

	err := r.db.WithContext(ctx).
		Preload("Pitch.Startup").
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		Find(&saved).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list saved pitches: %w", err)
	}

	return saved, nil
}
