package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/types"
)

var ErrNotAuthenticated = errors.New("User not authenticated")

func GetCurrentUser(ctx *gin.Context) (auth.Identity, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return auth.Identity{}, ErrNotAuthenticated
	}

	identity, ok := user.(auth.Identity)

	if !ok {
		return auth.Identity{}, errors.New("Invalid user type in context")
	}

	return identity, nil
}

// GetOptionalUser reports whether the request carries an identity.
func GetOptionalUser(ctx *gin.Context) (auth.Identity, bool) {
	identity, err := GetCurrentUser(ctx)
	return identity, err == nil
}

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return "", err
	}

	return user.ID, nil
}
