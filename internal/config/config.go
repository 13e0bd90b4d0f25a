package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	IdentityProviderSupabase = "supabase"
	IdentityProviderLocal    = "local"

	StorageBackendLocal    = "local"
	StorageBackendSupabase = "supabase"
)

// Config holds the application configuration
type Config struct {
	Port        string
	DatabaseURL string

	// Session token signing
	JWTSecret string
	TokenTTL  time.Duration

	// IdentityProvider selects where credentials are checked: "supabase" or "local"
	IdentityProvider string
	Supabase         SupabaseConfig

	Storage StorageConfig

	ClientURL      string
	AllowedOrigins string

	LogLevel string
	Debug    bool

	// publicURLSet records an explicit PUBLIC_URL so SetPort leaves it alone.
	publicURLSet bool
}

type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
}

type StorageConfig struct {
	Backend        string
	UploadDir      string
	PublicURL      string
	Bucket         string
	MaxUploadBytes int64
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		DatabaseURL: getEnv("DATABASE_URL", "file:venturely.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		Supabase: SupabaseConfig{
			URL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", StorageBackendLocal),
			UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
			Bucket:         getEnv("SUPABASE_STORAGE_BUCKET", "uploads"),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		},
		ClientURL:      os.Getenv("CLIENT_URL"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          getEnvBool("DEBUG", false),
	}

	if publicURL := os.Getenv("PUBLIC_URL"); publicURL != "" {
		cfg.Storage.PublicURL = strings.TrimRight(publicURL, "/")
		cfg.publicURLSet = true
	}
	cfg.SetPort(cfg.Port)

	defaultProvider := IdentityProviderLocal
	if cfg.Supabase.URL != "" {
		defaultProvider = IdentityProviderSupabase
	}
	cfg.IdentityProvider = getEnv("IDENTITY_PROVIDER", defaultProvider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetPort changes the listen port. A PublicURL that was not configured
// explicitly follows the port.
func (c *Config) SetPort(port string) {
	c.Port = port
	if !c.publicURLSet {
		c.Storage.PublicURL = "http://localhost:" + port
	}
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.IdentityProvider {
	case IdentityProviderLocal:
	case IdentityProviderSupabase:
		if c.Supabase.URL == "" || c.Supabase.ServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase identity provider")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}

	switch c.Storage.Backend {
	case StorageBackendLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageBackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.ServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for supabase storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
