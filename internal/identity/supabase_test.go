package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturely/venturely/internal/types"
)

// fakeGoTrue mimics the two Supabase Auth endpoints the provider calls.
type fakeGoTrue struct {
	users map[string]map[string]interface{} // email -> stored user
}

func (f *fakeGoTrue) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != "service-key" || r.Header.Get("Authorization") != "Bearer service-key" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid API key"})
		return
	}

	var body map[string]interface{}
	json.NewDecoder(r.Body).Decode(&body)
	email, _ := body["email"].(string)

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/v1/admin/users":
		if _, exists := f.users[email]; exists {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"msg": "A user with this email address has already been registered"})
			return
		}
		user := map[string]interface{}{
			"id":            "5b1c0e3e-0000-4000-8000-000000000001",
			"email":         email,
			"password":      body["password"],
			"user_metadata": body["user_metadata"],
		}
		f.users[email] = user
		json.NewEncoder(w).Encode(user)
	case r.Method == http.MethodPost && r.URL.Path == "/auth/v1/token" && r.URL.Query().Get("grant_type") == "password":
		user, exists := f.users[email]
		if !exists || user["password"] != body["password"] {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant", "error_description": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "gotrue-token", "user": user})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newSupabaseFixture(t *testing.T) (*SupabaseProvider, *fakeGoTrue) {
	t.Helper()
	p, fake, _ := newSupabaseServer(t, "service-key")
	return p, fake
}

func newSupabaseServer(t *testing.T, key string) (*SupabaseProvider, *fakeGoTrue, *httptest.Server) {
	t.Helper()
	fake := &fakeGoTrue{users: map[string]map[string]interface{}{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return NewSupabaseProvider(server.URL+"/", key, server.Client()), fake, server
}

func TestSupabaseCreateAccountAndLogin(t *testing.T) {
	p, _ := newSupabaseFixture(t)
	ctx := context.Background()

	created, err := p.CreateAccount(ctx, "a@x.com", "pw", Metadata{Role: types.RoleFounder, Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "5b1c0e3e-0000-4000-8000-000000000001", created.ID)
	assert.Equal(t, types.RoleFounder, created.Role)
	assert.Equal(t, "A", created.Name)

	verified, err := p.VerifyCredentials(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, created, verified)
}

func TestSupabaseCreateAccountRejected(t *testing.T) {
	p, _ := newSupabaseFixture(t)
	ctx := context.Background()

	_, err := p.CreateAccount(ctx, "a@x.com", "pw", Metadata{Role: types.RoleInvestor, Name: "A"})
	require.NoError(t, err)

	_, err = p.CreateAccount(ctx, "a@x.com", "pw", Metadata{Role: types.RoleInvestor, Name: "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderRejected)
	assert.Contains(t, err.Error(), "already been registered")
}

func TestSupabaseInvalidCredentials(t *testing.T) {
	p, _ := newSupabaseFixture(t)
	ctx := context.Background()

	_, err := p.CreateAccount(ctx, "a@x.com", "pw", Metadata{Role: types.RoleFounder, Name: "A"})
	require.NoError(t, err)

	_, err = p.VerifyCredentials(ctx, "a@x.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSupabaseLoginWithoutRoleMetadata(t *testing.T) {
	p, fake := newSupabaseFixture(t)
	fake.users["legacy@x.com"] = map[string]interface{}{
		"id":            "5b1c0e3e-0000-4000-8000-0000000000ff",
		"email":         "legacy@x.com",
		"password":      "pw",
		"user_metadata": map[string]interface{}{},
	}

	_, err := p.VerifyCredentials(context.Background(), "legacy@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSupabaseWrongServiceKey(t *testing.T) {
	p, _, _ := newSupabaseServer(t, "wrong")

	_, err := p.CreateAccount(context.Background(), "a@x.com", "pw", Metadata{Role: types.RoleFounder, Name: "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderRejected)
	assert.Equal(t, "Invalid API key", err.Error())
}

func TestSupabaseUnreachable(t *testing.T) {
	_, _, server := newSupabaseServer(t, "service-key")
	p := NewSupabaseProvider(server.URL, "service-key", server.Client())
	server.Close()

	_, err := p.VerifyCredentials(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.CreateAccount(context.Background(), "a@x.com", "pw", Metadata{Role: types.RoleFounder, Name: "A"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProviderRejected)
}

func TestParseStatusError(t *testing.T) {
	status, msg, ok := parseStatusError(errors.New(`response status code 422: {"msg":"Email taken"}`))
	assert.True(t, ok)
	assert.Equal(t, 422, status)
	assert.Equal(t, "Email taken", msg)

	status, msg, ok = parseStatusError(errors.New("response status code 503"))
	assert.True(t, ok)
	assert.Equal(t, 503, status)
	assert.Empty(t, msg)

	_, _, ok = parseStatusError(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
}
