package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"watchlist/internal/config"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory
	// database.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, InitSchema(gdb, false))
	return gdb
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:    "test-secret",
		DatabaseFile: ":memory:",
		AdminUserID:  1,
	}
}

func TestForge(t *testing.T) {
	gdb := setupTestDB(t)

	require.NoError(t, Forge(gdb))

	var users []User
	require.NoError(t, gdb.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Grey Li", users[0].Name)
	assert.Empty(t, users[0].Username)
	assert.Empty(t, users[0].PasswordHash)

	var movies []Movie
	require.NoError(t, gdb.Order("id").Find(&movies).Error)
	require.Len(t, movies, 10)
	assert.Equal(t, "My Neighbor Totoro", movies[0].Title)
	assert.Equal(t, "1988", movies[0].Year)
	assert.Equal(t, "The Pork of Music", movies[9].Title)
	assert.Equal(t, "2012", movies[9].Year)
}

func TestEnsureAdmin_CreatesThenUpdates(t *testing.T) {
	gdb := setupTestDB(t)
	cfg := testConfig()

	created, err := EnsureAdmin(gdb, cfg, "grey", "secret")
	require.NoError(t, err)
	assert.True(t, created)

	user, err := AdminUser(gdb, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)
	assert.Equal(t, "grey", user.Username)
	assert.True(t, user.ValidatePassword("secret"))
	assert.False(t, user.ValidatePassword("wrong"))
	assert.NotEqual(t, "secret", user.PasswordHash)

	created, err = EnsureAdmin(gdb, cfg, "admin", "rotated")
	require.NoError(t, err)
	assert.False(t, created)

	user, err = AdminUser(gdb, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.ValidatePassword("rotated"))
	assert.False(t, user.ValidatePassword("secret"))
}

func TestAdminUser_NotConfigured(t *testing.T) {
	gdb := setupTestDB(t)

	_, err := AdminUser(gdb, testConfig())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAdminUser_IgnoresOtherRows(t *testing.T) {
	gdb := setupTestDB(t)
	cfg := testConfig()
	cfg.AdminUserID = 2

	require.NoError(t, gdb.Create(&User{ID: 1, Name: "someone else"}).Error)

	_, err := AdminUser(gdb, cfg)
	assert.ErrorIs(t, err, ErrNotConfigured)

	created, err := EnsureAdmin(gdb, cfg, "grey", "secret")
	require.NoError(t, err)
	assert.True(t, created)

	user, err := AdminUser(gdb, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)
}

func TestInitSchema_Drop(t *testing.T) {
	gdb := setupTestDB(t)

	require.NoError(t, Forge(gdb))
	require.NoError(t, InitSchema(gdb, true))

	var count int64
	require.NoError(t, gdb.Model(&Movie{}).Count(&count).Error)
	assert.Zero(t, count)
}
