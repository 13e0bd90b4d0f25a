package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturely/venturely/internal/models"
)

func (e *testEnv) createPitch(token string, startup gin.H, pitch gin.H) (string, string) {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/startup", token, startup)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	startupID := decodeObject(e.t, w)["id"].(string)

	pitch["startup_id"] = startupID
	w = e.do(http.MethodPost, "/api/pitch", token, pitch)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	return decodeObject(e.t, w)["id"].(string), startupID
}

func ids(items []map[string]interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item["id"].(string))
	}
	return out
}

func TestPitchFeedVisibility(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, aliceID := env.signup("alice@x.com", "founder", "Alice")
	bobToken, _ := env.signup("bob@x.com", "founder", "Bob")
	investorToken, _ := env.signup("ivan@x.com", "investor", "Ivan")

	alicePitch, _ := env.createPitch(aliceToken,
		gin.H{"name": "Ledgerly", "industry": "Fintech", "stage": "Seed", "geography": "EU", "traction": "2k paying users"},
		gin.H{"description": "Books for freelancers", "funding_ask": 750000, "tags": []string{"saas", "b2b"}},
	)
	bobPitch, _ := env.createPitch(bobToken,
		gin.H{"name": "Clinicly", "industry": "Health", "stage": "Pre-seed", "geography": "US", "traction": "pilot with 3 clinics"},
		gin.H{"description": "Scheduling for clinics", "funding_ask": 250000},
	)

	t.Run("investor sees every pitch in full", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch", investorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		pitches := decodeList(t, w)
		assert.ElementsMatch(t, []string{alicePitch, bobPitch}, ids(pitches))
		for _, p := range pitches {
			assert.Contains(t, p, "funding_ask")
			assert.Contains(t, p, "founder_id")
			assert.NotNil(t, p["startup"])
		}
	})

	t.Run("founder sees only own pitches", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		pitches := decodeList(t, w)
		require.Len(t, pitches, 1)
		assert.Equal(t, alicePitch, pitches[0]["id"])
		assert.Equal(t, aliceID, pitches[0]["founder_id"])
		assert.Equal(t, float64(750000), pitches[0]["funding_ask"])
	})

	t.Run("anonymous caller gets previews", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		previews := decodeList(t, w)
		assert.ElementsMatch(t, []string{alicePitch, bobPitch}, ids(previews))
		for _, p := range previews {
			assert.NotContains(t, p, "funding_ask")
			assert.NotContains(t, p, "founder_id")
			assert.NotContains(t, p, "startup")
			assert.NotContains(t, p, "pitch_deck_url")
			assert.NotEmpty(t, p["startup_name"])
			assert.Contains(t, p, "industry")
			assert.Contains(t, p, "tags")
			assert.Contains(t, p, "created_at")
		}
	})

	t.Run("invalid token is rejected rather than downgraded", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("filters", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch?sector=fintech", investorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{alicePitch}, ids(decodeList(t, w)))

		w = env.do(http.MethodGet, "/api/pitch?stage=PRE-SEED&geography=us", investorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{bobPitch}, ids(decodeList(t, w)))

		w = env.do(http.MethodGet, "/api/pitch?traction=Clinics", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{bobPitch}, ids(decodeList(t, w)))

		w = env.do(http.MethodGet, "/api/pitch?sector=energy", investorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})

	t.Run("single pitch follows the same rules", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/pitch/"+alicePitch, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		preview := decodeObject(t, w)
		assert.Equal(t, "Ledgerly", preview["startup_name"])
		assert.NotContains(t, preview, "funding_ask")

		w = env.do(http.MethodGet, "/api/pitch/"+alicePitch, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, decodeObject(t, w), "funding_ask")

		w = env.do(http.MethodGet, "/api/pitch/"+alicePitch, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decodeObject(t, w), "funding_ask")

		w = env.do(http.MethodGet, "/api/pitch/"+alicePitch, investorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decodeObject(t, w), "funding_ask")

		w = env.do(http.MethodGet, "/api/pitch/"+uuid.NewString(), investorToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreatePitchRequiresOwnedStartup(t *testing.T) {
	env := newTestEnv(t)
	ownerToken, _ := env.signup("owner@x.com", "founder", "Owner")
	otherToken, _ := env.signup("other@x.com", "founder", "Other")
	investorToken, _ := env.signup("inv@x.com", "investor", "Inv")

	w := env.do(http.MethodPost, "/api/startup", ownerToken, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	startupID := decodeObject(t, w)["id"].(string)

	w = env.do(http.MethodPost, "/api/pitch", otherToken, gin.H{"startup_id": startupID, "description": "not mine"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/pitch", investorToken, gin.H{"startup_id": startupID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/api/pitch", ownerToken, gin.H{"description": "no startup"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/pitch", ownerToken, gin.H{"startup_id": startupID, "funding_ask": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, countRows(t, env.db, &models.Pitch{}))

	w = env.do(http.MethodPost, "/api/pitch", ownerToken, gin.H{
		"startup_id":     startupID,
		"description":    "ours",
		"pitch_deck_url": "decks.example.com/acme.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeObject(t, w)
	assert.Equal(t, "https://decks.example.com/acme.pdf", created["pitch_deck_url"])
	assert.Equal(t, []interface{}{}, created["tags"])
}

func TestSavePitchLifecycle(t *testing.T) {
	env := newTestEnv(t)
	founderToken, founderID := env.signup("f@x.com", "founder", "Fay")
	investorToken, investorID := env.signup("i@x.com", "investor", "Ivan")

	pitchID, _ := env.createPitch(founderToken, gin.H{"name": "Acme"}, gin.H{"description": "rockets"})

	w := env.do(http.MethodPost, "/api/pitch/"+pitchID+"/save", founderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/api/pitch/"+uuid.NewString()+"/save", investorToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/pitch/"+pitchID+"/save", investorToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decodeObject(t, w)
	assert.Equal(t, investorID, saved["investor_id"])
	assert.Equal(t, pitchID, saved["pitch_id"])

	w = env.do(http.MethodPost, "/api/pitch/"+pitchID+"/save", investorToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Pitch already saved", decodeObject(t, w)["error"])
	assert.Equal(t, int64(1), countRows(t, env.db, &models.SavedPitch{}))

	// exactly one notice for the founder, from the successful save
	w = env.do(http.MethodGet, "/api/founder/notifications", founderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notices := decodeList(t, w)
	require.Len(t, notices, 1)
	assert.Equal(t, "Ivan saved your pitch for Acme", notices[0]["message"])
	assert.Equal(t, false, notices[0]["read"])
	assert.NotEmpty(t, notices[0]["date"])

	var stored models.Notification
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, founderID, stored.UserID)

	noticeID := notices[0]["id"].(string)
	w = env.do(http.MethodPut, "/api/founder/notifications/"+noticeID+"/read", founderToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeObject(t, w)["read"])

	w = env.do(http.MethodPut, "/api/founder/notifications/"+uuid.NewString()+"/read", founderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/pitch/saved", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	pitch := list[0]["pitch"].(map[string]interface{})
	assert.Equal(t, pitchID, pitch["id"])

	w = env.do(http.MethodDelete, "/api/pitch/"+pitchID+"/save", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/api/pitch/"+pitchID+"/save", investorToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/pitch/saved", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}
