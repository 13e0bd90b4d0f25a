package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalProvider keeps accounts in the users table with bcrypt hashes. It stands
// in for the external service in development and tests.
type LocalProvider struct {
	db   *gorm.DB
	cost int
}

func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{db: db, cost: bcrypt.DefaultCost}
}

func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string, meta Metadata) (auth.Identity, error) {
	if err := validateSignup(email, password, meta); err != nil {
		return auth.Identity{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)

	if err != nil {
		return auth.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         meta.Name,
		Email:        normalizeEmail(email),
		PasswordHash: string(passwordHash),
		Role:         meta.Role,
	}

	result := p.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&user)

	if result.Error != nil {
		return auth.Identity{}, fmt.Errorf("failed to create user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return auth.Identity{}, &RejectedError{Message: "User already registered"}
	}

	return identityFromUser(user), nil
}

func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Identity{}, ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.Identity{}, ErrInvalidCredentials
	}

	return identityFromUser(user), nil
}

func identityFromUser(user models.User) auth.Identity {
	return auth.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
	}
}
