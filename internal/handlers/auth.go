package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/identity"
	"github.com/venturely/venturely/internal/types"
	"github.com/venturely/venturely/internal/utils"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  types.UserResponse `json:"user"`
}

func (h *Handler) Signup(ctx *gin.Context) {
	var body SignupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(body.Email) == "" || body.Password == "" || strings.TrimSpace(body.Role) == "" || strings.TrimSpace(body.Name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	role, err := types.ParseRole(body.Role)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be founder or investor"})
		return
	}

	account, err := h.deps.Identity.CreateAccount(ctx.Request.Context(), body.Email, body.Password, identity.Metadata{
		Role: role,
		Name: strings.TrimSpace(body.Name),
	})

	if err != nil {
		var rejected *identity.RejectedError

		switch {
		case errors.As(err, &rejected):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": rejected.Message})
		case errors.Is(err, identity.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		default:
			h.serverError(ctx, "Failed to create account", err)
		}
		return
	}

	h.respondWithToken(ctx, account)
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	account, err := h.deps.Identity.VerifyCredentials(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.serverError(ctx, "Failed to verify credentials", err)
		return
	}

	h.respondWithToken(ctx, account)
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": currentUser.Response()})
}

func (h *Handler) respondWithToken(ctx *gin.Context, account auth.Identity) {
	token, err := h.deps.Tokens.Issue(account)

	if err != nil {
		h.serverError(ctx, "Failed to issue token", err)
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: account.Response()})
}
