package models

type Startup struct {
	BaseModel

	FounderID     string  `gorm:"size:36;not null;index" json:"founder_id"`
	Name          string  `gorm:"not null" json:"name"`
	Tagline       string  `json:"tagline"`
	Industry      string  `gorm:"index" json:"industry"`
	Stage         string  `gorm:"index" json:"stage"`
	Geography     string  `json:"geography"`
	FundingNeeded float64 `json:"funding_needed"`
	Traction      string  `json:"traction"`
	Problem       string  `json:"problem"`
	Solution      string  `json:"solution"`
	Market        string  `json:"market"`
	BusinessModel string  `json:"business_model"`
	Website       string  `json:"website"`
}
