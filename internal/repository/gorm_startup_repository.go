package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/venturely/venturely/internal/models"
	"gorm.io/gorm"
)

type GormStartupRepository struct {
	db *gorm.DB
}

func NewGormStartupRepository(db *gorm.DB) *GormStartupRepository {
	return &GormStartupRepository{db: db}
}

func (r *GormStartupRepository) ListByFounder(ctx context.Context, founderID string) ([]models.Startup, error) {
	startups := []models.Startup{}

	if err := r.db.WithContext(ctx).Where("founder_id = ?", founderID).Order("created_at DESC").Find(&startups).Error; err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}

	return startups, nil
}

// GetOwned returns ErrNotFound both for a missing startup and for one owned by
// someone else.
func (r *GormStartupRepository) GetOwned(ctx context.Context, id, founderID string) (*models.Startup, error) {
	var startup models.Startup

	if err := r.db.WithContext(ctx).Where("id = ? AND founder_id = ?", id, founderID).First(&startup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch startup: %w", err)
	}

	return &startup, nil
}

func (r *GormStartupRepository) Create(ctx context.Context, startup *models.Startup) error {
	if err := r.db.WithContext(ctx).Create(startup).Error; err != nil {
		return fmt.Errorf("failed to create startup: %w", err)
	}
	return nil
}

func (r *GormStartupRepository) UpdateOwned(ctx context.Context, id, founderID string, updates map[string]interface{}) (*models.Startup, error) {
	result := r.db.WithContext(ctx).Model(&models.Startup{}).
		Where("id = ? AND founder_id = ?", id, founderID).
		Updates(updates)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update startup: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetOwned(ctx, id, founderID)
}
