package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/utils"
)

type FounderProfileRequest struct {
	Bio      *string `json:"bio"`
	LinkedIn *string `json:"linkedin"`
}

type NotificationResponse struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

func (h *Handler) GetFounderProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.deps.Profiles.GetFounderProfile(ctx.Request.Context(), currentUser.ID)

	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.serverError(ctx, "Failed to fetch founder profile", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":    currentUser.Response(),
		"profile": profile,
	})
}

func (h *Handler) CreateFounderProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body FounderProfileRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := body.updates()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := models.FounderProfile{ID: currentUser.ID}
	if bio, ok := updates["bio"].(string); ok {
		profile.Bio = bio
	}
	if linkedIn, ok := updates["linkedin"].(string); ok {
		profile.LinkedIn = linkedIn
	}

	if err := h.deps.Profiles.CreateFounderProfile(ctx.Request.Context(), &profile); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Founder profile already exists"})
			return
		}
		h.serverError(ctx, "Failed to create founder profile", err)
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

func (h *Handler) UpdateFounderProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body FounderProfileRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := body.updates()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	profile, err := h.deps.Profiles.UpdateFounderProfile(ctx.Request.Context(), currentUser.ID, updates)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Founder profile not found"})
			return
		}
		h.serverError(ctx, "Failed to update founder profile", err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *Handler) ListFounderNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := h.deps.Notifications.ListByUser(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, "Failed to fetch notifications", err)
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, toNotificationResponse(n))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) MarkNotificationRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetPathID(ctx, "id", "Notification")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.deps.Notifications.MarkRead(ctx.Request.Context(), notificationID, userID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.serverError(ctx, "Failed to update notification", err)
		return
	}

	ctx.JSON(http.StatusOK, toNotificationResponse(*notification))
}

// NotificationStream upgrades to a websocket that receives new notifications
// for the caller as they are created.
func (h *Handler) NotificationStream(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	h.deps.Hub.Serve(ctx.Writer, ctx.Request, userID)
}

func (r FounderProfileRequest) updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if r.Bio != nil {
		updates["bio"] = strings.TrimSpace(*r.Bio)
	}

	if r.LinkedIn != nil {
		linkedIn, err := utils.NormalizeURL(*r.LinkedIn)
		if err != nil {
			return nil, errors.New("Invalid LinkedIn URL")
		}
		updates["linkedin"] = linkedIn
	}

	return updates, nil
}

func toNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID,
		Message: n.Message,
		Date:    n.CreatedAt,
		Read:    n.Read,
	}
}
