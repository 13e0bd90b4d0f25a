package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/repository"
	"github.com/venturely/venturely/internal/types"
	"github.com/venturely/venturely/internal/utils"
)

type CreatePitchRequest struct {
	StartupID    string   `json:"startup_id"`
	Description  string   `json:"description"`
	FundingAsk   float64  `json:"funding_ask"`
	Tags         []string `json:"tags"`
	PitchDeckURL string   `json:"pitch_deck_url"`
	VideoURL     string   `json:"video_url"`
}

// PitchPreview is the public shape of a pitch. Financial and ownership fields
// are left out.
type PitchPreview struct {
	ID          string    `json:"id"`
	StartupName string    `json:"startup_name"`
	Industry    string    `json:"industry"`
	Stage       string    `json:"stage"`
	Geography   string    `json:"geography"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPitchPreview(p models.Pitch) PitchPreview {
	preview := PitchPreview{
		ID:          p.ID,
		Description: p.Description,
		Tags:        []string(p.Tags),
		CreatedAt:   p.CreatedAt,
	}
	if preview.Tags == nil {
		preview.Tags = []string{}
	}
	if p.Startup != nil {
		preview.StartupName = p.Startup.Name
		preview.Industry = p.Startup.Industry
		preview.Stage = p.Startup.Stage
		preview.Geography = p.Startup.Geography
	}
	return preview
}

// canSeeFullPitch: investors see every pitch in full, founders only their own.
func canSeeFullPitch(caller auth.Identity, authenticated bool, p models.Pitch) bool {
	if !authenticated {
		return false
	}
	switch caller.Role {
	case types.RoleInvestor:
		return true
	case types.RoleFounder:
		return p.FounderID == caller.ID
	default:
		return false
	}
}

// ListPitches is the pitch feed. Founders get their own pitches, investors get
// everything, anonymous callers get previews.
func (h *Handler) ListPitches(ctx *gin.Context) {
	caller, authenticated := utils.GetOptionalUser(ctx)

	filter := repository.PitchFilter{
		Sector:    strings.TrimSpace(ctx.Query("sector")),
		Stage:     strings.TrimSpace(ctx.Query("stage")),
		Geography: strings.TrimSpace(ctx.Query("geography")),
		Traction:  strings.TrimSpace(ctx.Query("traction")),
	}

	if authenticated && caller.Role == types.RoleFounder {
		filter.FounderID = caller.ID
	}

	pitches, err := h.deps.Pitches.List(ctx.Request.Context(), filter)

	if err != nil {
		h.serverError(ctx, "Failed to retrieve pitches", err)
		return
	}

	if authenticated && (caller.Role == types.RoleInvestor || caller.Role == types.RoleFounder) {
		ctx.JSON(http.StatusOK, pitches)
		return
	}

	previews := make([]PitchPreview, 0, len(pitches))
	for _, p := range pitches {
		previews = append(previews, toPitchPreview(p))
	}

	ctx.JSON(http.StatusOK, previews)
}

func (h *Handler) GetPitch(ctx *gin.Context) {
	caller, authenticated := utils.GetOptionalUser(ctx)

	pitchID, err := utils.GetPathID(ctx, "id", "Pitch")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pitch, err := h.deps.Pitches.Get(ctx.Request.Context(), pitchID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
			return
		}
		h.serverError(ctx, "Failed to retrieve pitch", err)
		return
	}

	if canSeeFullPitch(caller, authenticated, *pitch) {
		ctx.JSON(http.StatusOK, pitch)
		return
	}

	ctx.JSON(http.StatusOK, toPitchPreview(*pitch))
}

func (h *Handler) CreatePitch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreatePitchRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(body.StartupID) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Startup ID is required"})
		return
	}

	if body.FundingAsk < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Funding ask must not be negative"})
		return
	}

	deckURL, err := utils.NormalizeURL(body.PitchDeckURL)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch deck URL"})
		return
	}

	videoURL, err := utils.NormalizeURL(body.VideoURL)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video URL"})
		return
	}

	startup, err := h.deps.Startups.GetOwned(ctx.Request.Context(), strings.TrimSpace(body.StartupID), userID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
			return
		}
		h.serverError(ctx, "Failed to retrieve startup", err)
		return
	}

	pitch := models.Pitch{
		StartupID:    startup.ID,
		FounderID:    userID,
		Description:  strings.TrimSpace(body.Description),
		FundingAsk:   body.FundingAsk,
		Tags:         cleanList(body.Tags),
		PitchDeckURL: deckURL,
		VideoURL:     videoURL,
	}

	if err := h.deps.Pitches.Create(ctx.Request.Context(), &pitch); err != nil {
		h.serverError(ctx, "Failed to create pitch", err)
		return
	}

	pitch.Startup = startup

	ctx.JSON(http.StatusCreated, pitch)
}

// SavePitch bookmarks a pitch for the calling investor and notifies the
// pitch's founder.
func (h *Handler) SavePitch(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pitchID, err := utils.GetPathID(ctx, "id", "Pitch")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pitch, err := h.deps.Pitches.Get(ctx.Request.Context(), pitchID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
			return
		}
		h.serverError(ctx, "Failed to retrieve pitch", err)
		return
	}

	saved := models.SavedPitch{
		InvestorID: currentUser.ID,
		PitchID:    pitch.ID,
	}

	notice := models.Notification{
		UserID:  pitch.FounderID,
		Message: savedPitchMessage(currentUser, pitch),
	}

	if err := h.deps.SavedPitches.Save(ctx.Request.Context(), &saved, &notice); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Pitch already saved"})
			return
		}
		h.serverError(ctx, "Failed to save pitch", err)
		return
	}

	if h.deps.Hub != nil {
		h.deps.Hub.Publish(pitch.FounderID, notice)
	}

	ctx.JSON(http.StatusCreated, saved)
}

func (h *Handler) UnsavePitch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pitchID, err := utils.GetPathID(ctx, "id", "Pitch")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.deps.SavedPitches.Delete(ctx.Request.Context(), userID, pitchID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Saved pitch not found"})
			return
		}
		h.serverError(ctx, "Failed to remove saved pitch", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Pitch removed from saved"})
}

func (h *Handler) ListSavedPitches(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	saved, err := h.deps.SavedPitches.ListByInvestor(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, "Failed to retrieve saved pitches", err)
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

func savedPitchMessage(investor auth.Identity, pitch *models.Pitch) string {
	who := investor.Name
	if who == "" {
		who = "An investor"
	}

	if pitch.Startup != nil && pitch.Startup.Name != "" {
		return fmt.Sprintf("%s saved your pitch for %s", who, pitch.Startup.Name)
	}

	return fmt.Sprintf("%s saved your pitch", who)
}
