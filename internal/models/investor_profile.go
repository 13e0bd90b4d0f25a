package models

import (
	"time"

	"gorm.io/datatypes"
)

type InvestorProfile struct {
	ID               string                      `gorm:"primaryKey;size:36" json:"id"`
	Firm             string                      `json:"firm"`
	Website          string                      `json:"website"`
	Bio              string                      `json:"bio"`
	CheckSize        string                      `json:"check_size"`
	PreferredSectors datatypes.JSONSlice[string] `json:"preferred_sectors"`
	PreferredGeos    datatypes.JSONSlice[string] `json:"preferred_geos"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}
