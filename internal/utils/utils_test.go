package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetPathID(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	ctx.Params = gin.Params{{Key: "id", Value: "0190b6b4-7d5c-7a1e-8f3e-3b2a1c0d9e8f"}}
	id, err := GetPathID(ctx, "id", "Pitch")
	require.NoError(t, err)
	assert.Equal(t, "0190b6b4-7d5c-7a1e-8f3e-3b2a1c0d9e8f", id)

	ctx.Params = gin.Params{{Key: "id", Value: "42"}}
	_, err = GetPathID(ctx, "id", "Pitch")
	assert.EqualError(t, err, "Invalid Pitch ID")

	ctx.Params = nil
	_, err = GetPathID(ctx, "id", "Startup")
	assert.EqualError(t, err, "Startup ID not found")
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "  acme.io ", want: "https://acme.io"},
		{input: "http://acme.io/about", want: "http://acme.io/about"},
		{input: "ftp://acme.io", wantErr: true},
		{input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetCurrentUser(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, ok := GetOptionalUser(ctx)
	assert.False(t, ok)

	ctx.Set(types.ContextUserKey, auth.Identity{ID: "u-1", Role: types.RoleFounder})
	id, err := GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	ctx.Set(types.ContextUserKey, "not an identity")
	_, err = GetCurrentUser(ctx)
	assert.Error(t, err)
}
