package models

import "github.com/venturely/venturely/internal/types"

// User is only persisted by the local identity provider. With Supabase the
// account lives in the external auth service.
type User struct {
	BaseModel

	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         types.Role `gorm:"size:16;not null" json:"role"`
}
