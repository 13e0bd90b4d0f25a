package models

import "time"

// FounderProfile is keyed by the owning user's id, which makes it one-to-one
// with the account.
type FounderProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Bio       string    `json:"bio"`
	LinkedIn  string    `gorm:"column:linkedin" json:"linkedin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
