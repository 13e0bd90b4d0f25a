package repository

import (
	"context"
	"fmt"

	"github.com/venturely/venturely/internal/models"
	"gorm.io/gorm"
)

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update notification: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var notification models.Notification
	if err := first(r.db.WithContext(ctx), &notification, id); err != nil {
		return nil, err
	}

	return &notification, nil
}
