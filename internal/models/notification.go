package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a short text notice addressed to a single user.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"default:false;not null" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	return nil
}
