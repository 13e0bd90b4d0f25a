package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/utils"
)

// StartupRequest is shared by create and update. On update only the fields
// present in the body change.
type StartupRequest struct {
	Name          *string  `json:"name"`
	Tagline       *string  `json:"tagline"`
	Industry      *string  `json:"industry"`
	Stage         *string  `json:"stage"`
	Geography     *string  `json:"geography"`
	FundingNeeded *float64 `json:"funding_needed"`
	Traction      *string  `json:"traction"`
	Problem       *string  `json:"problem"`
	Solution      *string  `json:"solution"`
	Market        *string  `json:"market"`
	BusinessModel *string  `json:"business_model"`
	Website       *string  `json:"website"`
}

func (h *Handler) ListStartups(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	startups, err := h.deps.Startups.ListByFounder(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, "Failed to retrieve startups", err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

func (h *Handler) GetStartup(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	startupID, err := utils.GetPathID(ctx, "id", "Startup")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startup, err := h.deps.Startups.GetOwned(ctx.Request.Context(), startupID, userID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
			return
		}
		h.serverError(ctx, "Failed to retrieve startup", err)
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

func (h *Handler) CreateStartup(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body StartupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Startup name is required"})
		return
	}

	updates, err := body.updates()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startup := models.Startup{FounderID: userID}
	applyStartupFields(&startup, updates)

	if err := h.deps.Startups.Create(ctx.Request.Context(), &startup); err != nil {
		h.serverError(ctx, "Failed to create startup", err)
		return
	}

	ctx.JSON(http.StatusCreated, startup)
}

func (h *Handler) UpdateStartup(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	startupID, err := utils.GetPathID(ctx, "id", "Startup")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body StartupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Startup name is required"})
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

	// the owner filter lives in the UPDATE itself, so a foreign row is never touched
	startup, err := h.deps.Startups.UpdateOwned(ctx.Request.Context(), startupID, userID, updates)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
			return
		}
		h.serverError(ctx, "Failed to update startup", err)
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

func (r StartupRequest) updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	text := map[string]*string{
		"name":           r.Name,
		"tagline":        r.Tagline,
		"industry":       r.Industry,
		"stage":          r.Stage,
		"geography":      r.Geography,
		"traction":       r.Traction,
		"problem":        r.Problem,
		"solution":       r.Solution,
		"market":         r.Market,
		"business_model": r.BusinessModel,
	}
	for column, value := range text {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}

	if r.FundingNeeded != nil {
		if *r.FundingNeeded < 0 {
			return nil, errors.New("Funding needed must not be negative")
		}
		updates["funding_needed"] = *r.FundingNeeded
	}

	if r.Website != nil {
		website, err := utils.NormalizeURL(*r.Website)
		if err != nil {
			return nil, errors.New("Invalid website URL")
		}
		updates["website"] = website
	}

	return updates, nil
}

func applyStartupFields(s *models.Startup, updates map[string]interface{}) {
	str := func(column string) string {
		v, _ := updates[column].(string)
		return v
	}

	s.Name = str("name")
	s.Tagline = str("tagline")
	s.Industry = str("industry")
	s.Stage = str("stage")
	s.Geography = str("geography")
	s.Traction = str("traction")
	s.Problem = str("problem")
	s.Solution = str("solution")
	s.Market = str("market")
	s.BusinessModel = str("business_model")
	s.Website = str("website")
	s.FundingNeeded, _ = updates["funding_needed"].(float64)
}
