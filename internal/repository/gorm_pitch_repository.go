package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/venturely/venturely/internal/models"
	"gorm.io/gorm"
)

type GormPitchRepository struct {
	db *gorm.DB
}

func NewGormPitchRepository(db *gorm.DB) *GormPitchRepository {
	return &GormPitchRepository{db: db}
}

// List returns the newest pitches first with their startup preloaded. Sector,
// stage and geography match case-insensitively; traction is a substring match.
func (r *GormPitchRepository) List(ctx context.Context, filter PitchFilter) ([]models.Pitch, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Pitch{}).
		Joins("JOIN startups ON startups.id = pitches.startup_id").
		Preload("Startup")

	if filter.FounderID != "" {
		query = query.Where("pitches.founder_id = ?", filter.FounderID)
	}

	if filter.Sector != "" {
		query = query.Where("LOWER(startups.industry) = ?", strings.ToLower(filter.Sector))
	}

	if filter.Stage != "" {
		query = query.Where("LOWER(startups.stage) = ?", strings.ToLower(filter.Stage))
	}

	if filter.Geography != "" {
		query = query.Where("LOWER(startups.geography) = ?", strings.ToLower(filter.Geography))
	}

	if filter.Traction != "" {
		query = query.Where("LOWER(startups.traction) LIKE ?", "%"+strings.ToLower(filter.Traction)+"%")
	}

	pitches := []models.Pitch{}

	if err := query.Order("pitches.created_at DESC").Find(&pitches).Error; err != nil {
		return nil, fmt.Errorf("failed to list pitches: %w", err)
	}

	return pitches, nil
}

func (r *GormPitchRepository) Get(ctx context.Context, id string) (*models.Pitch, error) {
	var pitch models.Pitch

	if err := r.db.WithContext(ctx).Preload("Startup").Where("id = ?", id).First(&pitch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch pitch: %w", err)
	}

	return &pitch, nil
}

func (r *GormPitchRepository) Create(ctx context.Context, pitch *models.Pitch) error {
	if err := r.db.WithContext(ctx).Omit("Startup").Create(pitch).Error; err != nil {
		return fmt.Errorf("failed to create pitch: %w", err)
	}
	return nil
}
