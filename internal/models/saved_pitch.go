package models

import (
	"time"

	"gorm.io/gorm"
)

type SavedPitch struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	InvestorID string    `gorm:"size:36;not null;uniqueIndex:idx_investor_pitch" json:"investor_id"`
	PitchID    string    `gorm:"size:36;not null;uniqueIndex:idx_investor_pitch" json:"pitch_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Pitch *Pitch `gorm:"foreignKey:PitchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"pitch,omitempty"`
}

func (s *SavedPitch) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
