package db

import (
	"errors"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"watchlist/internal/config"
)

// Open opens the SQLite database file named by DATABASE_FILE without
// touching the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	path := strings.TrimSpace(cfg.DatabaseFile)
	if path == "" {
		return nil, errors.New("DATABASE_FILE must not be empty")
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// Connect opens the database and auto-migrates the core tables.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}, &Movie{}); err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema creates the user and movie tables, dropping them first when
// drop is set.
func InitSchema(db *gorm.DB, drop bool) error {
	if drop {
		if err := db.Migrator().DropTable(&User{}, &Movie{}); err != nil {
			return err
		}
	}
	return db.AutoMigrate(&User{}, &Movie{})
}

// Forge seeds the fixed demo data set: one user without login credentials
// plus ten movies.
func Forge(db *gorm.DB) error {
	user := &User{Name: "Grey Li"}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	movies := []Movie{
		{Title: "My Neighbor Totoro", Year: "1988"},
		{Title: "Dead Poets Society", Year: "1989"},
		{Title: "A Perfect World", Year: "1993"},
		{Title: "Leon", Year: "1994"},
		{Title: "Mahjong", Year: "1996"},
		{Title: "Swallowtail Butterfly", Year: "1996"},
		{Title: "King of Comedy", Year: "1999"},
		{Title: "Devils on the Doorstep", Year: "1999"},
		{Title: "WALL-E", Year: "2008"},
		{Title: "The Pork of Music", Year: "2012"},
	}
	return db.Create(&movies).Error
}

// EnsureAdmin creates or updates the designated admin user with the given
// login credentials. A missing row is created with a default display name;
// an existing row keeps its display name and gets the new username and
// password hash. created reports which of the two happened.
func EnsureAdmin(db *gorm.DB, cfg *config.Config, username, password string) (created bool, err error) {
	var user User
	if err := db.Limit(1).Find(&user, cfg.AdminUserID).Error; err != nil {
		return false, err
	}

	if user.ID == 0 {
		user = User{ID: cfg.AdminUserID, Name: "Admin", Username: username}
		if err := user.SetPassword(password); err != nil {
			return false, err
		}
		return true, db.Create(&user).Error
	}

	user.Username = username
	if err := user.SetPassword(password); err != nil {
		return false, err
	}
	return false, db.Save(&user).Error
}
