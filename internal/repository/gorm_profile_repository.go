package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/venturely/venturely/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) GetFounderProfile(ctx context.Context, userID string) (*models.FounderProfile, error) {
	var profile models.FounderProfile
	if err := first(r.db.WithContext(ctx), &profile, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormProfileRepository) CreateFounderProfile(ctx context.Context, profile *models.FounderProfile) error {
	return insertOnce(r.db.WithContext(ctx), profile)
}

func (r *GormProfileRepository) UpdateFounderProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.FounderProfile, error) {
	if err := updateByID(r.db.WithContext(ctx), &models.FounderProfile{}, userID, updates); err != nil {
		return nil, err
	}
	return r.GetFounderProfile(ctx, userID)
}

func (r *GormProfileRepository) GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error) {
	var profile models.InvestorProfile
	if err := first(r.db.WithContext(ctx), &profile, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormProfileRepository) CreateInvestorProfile(ctx context.Context, profile *models.InvestorProfile) error {
	return insertOnce(r.db.WithContext(ctx), profile)
}

func (r *GormProfileRepository) UpdateInvestorProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.InvestorProfile, error) {
	if err := updateByID(r.db.WithContext(ctx), &models.InvestorProfile{}, userID, updates); err != nil {
		return nil, err
	}
	return r.GetInvestorProfile(ctx, userID)
}

func first(db *gorm.DB, dest interface{}, id string) error {
	if err := db.Where("id = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch %T: %w", dest, err)
	}
	return nil
}

// insertOnce relies on the primary key or a unique index: a conflicting row
// leaves the table untouched and reports ErrAlreadyExists.
func insertOnce(db *gorm.DB, value interface{}) error {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)

	if result.Error != nil {
		return fmt.Errorf("failed to create %T: %w", value, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrAlreadyExists
	}

	return nil
}

func updateByID(db *gorm.DB, model interface{}, id string, updates map[string]interface{}) error {
	result := db.Model(model).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %T: %w", model, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
