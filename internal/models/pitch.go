package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pitch has no update path once created, so it carries no UpdatedAt.
type Pitch struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	StartupID    string                      `gorm:"size:36;not null;index" json:"startup_id"`
	FounderID    string                      `gorm:"size:36;not null;index" json:"founder_id"`
	Description  string                      `json:"description"`
	FundingAsk   float64                     `json:"funding_ask"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	PitchDeckURL string                      `json:"pitch_deck_url"`
	VideoURL     string                      `json:"video_url"`
	CreatedAt    time.Time                   `gorm:"index" json:"created_at"`

	// Relationships
	Startup *Startup `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"startup,omitempty"`
}

func (p *Pitch) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}
