package repository

import (
	"context"
	"errors"

	"github.com/venturely/venturely/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the caller
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a unique row is inserted twice
	ErrAlreadyExists = errors.New("record already exists")
)

type ProfileRepository interface {
	GetFounderProfile(ctx context.Context, userID string) (*models.FounderProfile, error)
	CreateFounderProfile(ctx context.Context, profile *models.FounderProfile) error
	UpdateFounderProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.FounderProfile, error)

	GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error)
	CreateInvestorProfile(ctx context.Context, profile *models.InvestorProfile) error
	UpdateInvestorProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.InvestorProfile, error)
}

type StartupRepository interface {
	ListByFounder(ctx context.Context, founderID string) ([]models.Startup, error)
	GetOwned(ctx context.Context, id, founderID string) (*models.Startup, error)
	Create(ctx context.Context, startup *models.Startup) error
	UpdateOwned(ctx context.Context, id, founderID string, updates map[string]interface{}) (*models.Startup, error)
}

// PitchFilter narrows the pitch feed. Empty fields are ignored.
type PitchFilter struct {
	FounderID string
	Sector    string
	Stage     string
	Geography string
	Traction  string
}

type PitchRepository interface {
	List(ctx context.Context, filter PitchFilter) ([]models.Pitch, error)
	Get(ctx context.Context, id string) (*models.Pitch, error)
	Create(ctx context.Context, pitch *models.Pitch) error
}

type SavedPitchRepository interface {
	// Save inserts the bookmark and, when notice is non-nil, the notification in
	// one transaction. A repeated pair yields ErrAlreadyExists.
	Save(ctx context.Context, saved *models.SavedPitch, notice *models.Notification) error
	Delete(ctx context.Context, investorID, pitchID string) error
	ListByInvestor(ctx context.Context, investorID string) ([]models.SavedPitch, error)
}

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *models.FileRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error)
}
