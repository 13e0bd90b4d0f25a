// Package identity delegates account creation and credential checks to an
// identity service. Raw passwords never leave a Provider.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/types"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrProviderRejected   = errors.New("identity provider rejected the request")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Metadata is attached to the account at signup and never changes.
type Metadata struct {
	Role types.Role `json:"role"`
	Name string     `json:"name"`
}

type Provider interface {
	CreateAccount(ctx context.Context, email, password string, meta Metadata) (auth.Identity, error)
	VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error)
}

// RejectedError carries the provider's own message so handlers can surface it.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrProviderRejected
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(email, password string, meta Metadata) error {
	if normalizeEmail(email) == "" || password == "" || strings.TrimSpace(meta.Name) == "" {
		return ErrInvalidInput
	}
	if !meta.Role.Valid() {
		return ErrInvalidInput
	}
	return nil
}
