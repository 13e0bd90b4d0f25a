package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/utils"
	"gorm.io/datatypes"
)

type InvestorProfileRequest struct {
	Firm             *string   `json:"firm"`
	Website          *string   `json:"website"`
	Bio              *string   `json:"bio"`
	CheckSize        *string   `json:"check_size"`
	PreferredSectors *[]string `json:"preferred_sectors"`
	PreferredGeos    *[]string `json:"preferred_geos"`
}

func (h *Handler) GetInvestorProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.deps.Profiles.GetInvestorProfile(ctx.Request.Context(), currentUser.ID)

	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.serverError(ctx, "Failed to fetch investor profile", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":    currentUser.Response(),
		"profile": profile,
	})
}

func (h *Handler) CreateInvestorProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body InvestorProfileRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := body.updates()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := models.InvestorProfile{
		ID:               currentUser.ID,
		PreferredSectors: datatypes.JSONSlice[string]{},
		PreferredGeos:    datatypes.JSONSlice[string]{},
	}
	if v, ok := updates["firm"].(string); ok {
		profile.Firm = v
	}
	if v, ok := updates["website"].(string); ok {
		profile.Website = v
	}
	if v, ok := updates["bio"].(string); ok {
		profile.Bio = v
	}
	if v, ok := updates["check_size"].(string); ok {
		profile.CheckSize = v
	}
	if v, ok := updates["preferred_sectors"].(datatypes.JSONSlice[string]); ok {
		profile.PreferredSectors = v
	}
	if v, ok := updates["preferred_geos"].(datatypes.JSONSlice[string]); ok {
		profile.PreferredGeos = v
	}

	if err := h.deps.Profiles.CreateInvestorProfile(ctx.Request.Context(), &profile); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Investor profile already exists"})
			return
		}
		h.serverError(ctx, "Failed to create investor profile", err)
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

func (h *Handler) UpdateInvestorProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body InvestorProfileRequest

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

	profile, err := h.deps.Profiles.UpdateInvestorProfile(ctx.Request.Context(), currentUser.ID, updates)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Investor profile not found"})
			return
		}
		h.serverError(ctx, "Failed to update investor profile", err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (r InvestorProfileRequest) updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if r.Firm != nil {
		updates["firm"] = strings.TrimSpace(*r.Firm)
	}

	if r.Website != nil {
		website, err := utils.NormalizeURL(*r.Website)
		if err != nil {
			return nil, errors.New("Invalid website URL")
		}
		updates["website"] = website
	}

	if r.Bio != nil {
		updates["bio"] = strings.TrimSpace(*r.Bio)
	}

	if r.CheckSize != nil {
		updates["check_size"] = strings.TrimSpace(*r.CheckSize)
	}

	if r.PreferredSectors != nil {
		updates["preferred_sectors"] = cleanList(*r.PreferredSectors)
	}

	if r.PreferredGeos != nil {
		updates["preferred_geos"] = cleanList(*r.PreferredGeos)
	}

	return updates, nil
}

// cleanList trims entries and drops empty ones.
func cleanList(values []string) datatypes.JSONSlice[string] {
	cleaned := make(datatypes.JSONSlice[string], 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
