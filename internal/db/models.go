package db

import (
	"time"
)

// User is the single account that can sign in to the application. The
// admin CLI command creates or updates it; the application itself never
// deletes it.
type User struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the display name shown in the page header. Updated via
	// the settings form.
	Name string `gorm:"size:20"`

	Username     string `gorm:"size:20"`
	PasswordHash string `gorm:"size:255"`
}

// Movie is one watchlist entry. Movies are global rather than owned by
// a user, and carry the release year as a 4-character string.
type Movie struct {
	ID uint `gorm:"primaryKey"`

	Title string `gorm:"size:60;not null"`
	Year  string `gorm:"size:4;not null"`
}
