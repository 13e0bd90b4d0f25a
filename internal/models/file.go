package models

import (
	"time"

	"gorm.io/gorm"
)

// FileRecord is append-only upload metadata. The blob itself lives in the
// configured storage backend.
type FileRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"owner_id"`
	Name      string    `json:"name"`
	URL       string    `gorm:"not null" json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func (FileRecord) TableName() string { return "files" }

func (f *FileRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}
