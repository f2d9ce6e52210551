package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DATABASE_FILE", "")
	t.Setenv("APP_LISTEN_ADDR", "")
	t.Setenv("APP_ADMIN_USER_ID", "")

	cfg, insecure := Load()
	assert.True(t, insecure)
	assert.Equal(t, DevSecretKey, cfg.SecretKey)
	assert.Equal(t, "data.db", cfg.DatabaseFile)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, uint(1), cfg.AdminUserID)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("DATABASE_FILE", "movies.db")
	t.Setenv("APP_LISTEN_ADDR", ":9000")
	t.Setenv("APP_ADMIN_USER_ID", "7")

	cfg, insecure := Load()
	assert.False(t, insecure)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, "movies.db", cfg.DatabaseFile)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, uint(7), cfg.AdminUserID)
}

func TestLoad_BadAdminUserID(t *testing.T) {
	t.Setenv("APP_ADMIN_USER_ID", "zero")

	cfg, _ := Load()
	assert.Equal(t, uint(1), cfg.AdminUserID)
}
