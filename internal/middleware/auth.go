package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/types"
	"github.com/venturely/venturely/internal/utils"
)

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		authenticate(ctx, verifier, authHeader)
	}
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects a
// header that is present and invalid.
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		authenticate(ctx, verifier, authHeader)
	}
}

func authenticate(ctx *gin.Context, verifier TokenVerifier, authHeader string) {
	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
		return
	}

	identity, err := verifier.Verify(strings.TrimSpace(parts[1]))

	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			return
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	ctx.Set(types.ContextUserKey, identity)
	ctx.Next()
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if identity.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: " + role.String() + " role required"})
			return
		}

		ctx.Next()
	}
}

// QueryToken copies a ?token= query parameter into the Authorization header
// when the header is absent.
func QueryToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			if token := ctx.Query("token"); token != "" {
				ctx.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		ctx.Next()
	}
}
