package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"PORT", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "IDENTITY_PROVIDER",
	"SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "STORAGE_BACKEND", "UPLOAD_DIR",
	"PUBLIC_URL", "SUPABASE_STORAGE_BUCKET", "MAX_UPLOAD_BYTES", "CLIENT_URL",
	"ALLOWED_ORIGINS", "LOG_LEVEL", "DEBUG",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "file:venturely.db", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, IdentityProviderLocal, cfg.IdentityProvider)
	assert.Equal(t, StorageBackendLocal, cfg.Storage.Backend)
	assert.Equal(t, "http://localhost:4000", cfg.Storage.PublicURL)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes)
	assert.False(t, cfg.Debug)
}

func TestSetPortMovesDefaultPublicURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Storage.PublicURL)

	cfg.SetPort("8080")
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Storage.PublicURL)
}

func TestSetPortKeepsExplicitPublicURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PUBLIC_URL", "https://api.venturely.io/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.venturely.io", cfg.Storage.PublicURL)

	cfg.SetPort("8080")
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.venturely.io", cfg.Storage.PublicURL)
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadSupabaseDefaultsProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("DEBUG", "yes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, IdentityProviderSupabase, cfg.IdentityProvider)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Debug)
}

func TestLoadSupabaseProviderNeedsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("IDENTITY_PROVIDER", "supabase")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "s3")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("IDENTITY_PROVIDER", "ldap")

	_, err = Load()
	require.Error(t, err)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("PORT")
	require.NoError(t, os.WriteFile(".env", []byte("JWT_SECRET=from-dotenv\nPORT=9090\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
	assert.Equal(t, "9090", cfg.Port)
}

// chdir switches into dir for the duration of the test (t.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
