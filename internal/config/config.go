package config

import (
	"os"
	"strconv"
)

// DevSecretKey is the development fallback for SECRET_KEY. Load reports
// when it is in use so the server can warn about it.
const DevSecretKey = "dev"

// Config holds the core runtime configuration for the application.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	// SecretKey signs session cookies.
	SecretKey string

	// DatabaseFile is the SQLite database filename, resolved relative
	// to the working directory.
	DatabaseFile string

	ListenAddr string

	// AdminUserID designates the single user row the application
	// authenticates against. The application is single-tenant: exactly
	// one user row is meaningful.
	AdminUserID uint
}

// Load reads configuration from environment variables and applies defaults.
// insecure reports whether the development SECRET_KEY fallback is in use.
func Load() (cfg *Config, insecure bool) {
	cfg = &Config{
		SecretKey:    getenv("SECRET_KEY", DevSecretKey),
		DatabaseFile: getenv("DATABASE_FILE", "data.db"),
		ListenAddr:   getenv("APP_LISTEN_ADDR", ":8080"),
		AdminUserID:  1,
	}

	if v := os.Getenv("APP_ADMIN_USER_ID"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			cfg.AdminUserID = uint(id)
		}
	}

	return cfg, cfg.SecretKey == DevSecretKey
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
