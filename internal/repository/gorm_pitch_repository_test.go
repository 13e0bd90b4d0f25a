package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/testutil"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedPitch(t *testing.T, db *gorm.DB, startup models.Startup, pitch models.Pitch) models.Pitch {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, NewGormStartupRepository(db).Create(ctx, &startup))
	pitch.StartupID = startup.ID
	pitch.FounderID = startup.FounderID
	require.NoError(t, NewGormPitchRepository(db).Create(ctx, &pitch))
	return pitch
}

func pitchIDs(pitches []models.Pitch) []string {
	ids := make([]string, 0, len(pitches))
	for _, p := range pitches {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGormPitchRepository_ListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormPitchRepository(db)
	ctx := context.Background()

	fintech := seedPitch(t, db,
		models.Startup{FounderID: "founder-1", Name: "Ledger", Industry: "Fintech", Stage: "Seed", Geography: "EU", Traction: "1,200 paying users"},
		models.Pitch{Description: "payments", FundingAsk: 500000, Tags: datatypes.JSONSlice[string]{"b2b"}})
	climate := seedPitch(t, db,
		models.Startup{FounderID: "founder-2", Name: "Grid", Industry: "Climate", Stage: "Series A", Geography: "US", Traction: "3 pilots"},
		models.Pitch{Description: "storage", FundingAsk: 2000000})

	tests := []struct {
		name     string
		filter   PitchFilter
		expected []string
	}{
		{name: "no filter", filter: PitchFilter{}, expected: []string{fintech.ID, climate.ID}},
		{name: "sector case-insensitive", filter: PitchFilter{Sector: "fintech"}, expected: []string{fintech.ID}},
		{name: "stage", filter: PitchFilter{Stage: "series a"}, expected: []string{climate.ID}},
		{name: "geography", filter: PitchFilter{Geography: "eu"}, expected: []string{fintech.ID}},
		{name: "traction substring", filter: PitchFilter{Traction: "PILOTS"}, expected: []string{climate.ID}},
		{name: "founder scope", filter: PitchFilter{FounderID: "founder-2"}, expected: []string{climate.ID}},
		{name: "combined without match", filter: PitchFilter{Sector: "Fintech", Geography: "US"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pitches, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, pitchIDs(pitches))
			for _, p := range pitches {
				require.NotNil(t, p.Startup)
				assert.Equal(t, p.StartupID, p.Startup.ID)
			}
		})
	}
}

func TestGormPitchRepository_Get(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormPitchRepository(db)
	ctx := context.Background()

	pitch := seedPitch(t, db, models.Startup{FounderID: "founder-1", Name: "Ledger"}, models.Pitch{Description: "payments"})

	fetched, err := repo.Get(ctx, pitch.ID)
	require.NoError(t, err)
	assert.Equal(t, "payments", fetched.Description)
	assert.Equal(t, datatypes.JSONSlice[string]{}, fetched.Tags)
	require.NotNil(t, fetched.Startup)
	assert.Equal(t, "Ledger", fetched.Startup.Name)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
