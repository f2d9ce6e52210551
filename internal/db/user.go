package db

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"watchlist/internal/config"
)

// ErrNotConfigured is returned when the designated admin user row does
// not exist yet, meaning `watchlist admin` has not been run against this
// database.
var ErrNotConfigured = errors.New("admin user is not configured")

// SetPassword hashes password with bcrypt and stores the hash on the user.
// The plaintext password is never persisted.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ValidatePassword reports whether password matches the stored hash.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AdminUser loads the designated single-tenant user row. The row id comes
// from config rather than an implicit "first row" query, so behavior stays
// defined when zero or multiple user rows exist.
func AdminUser(db *gorm.DB, cfg *config.Config) (*User, error) {
	var user User
	if err := db.First(&user, cfg.AdminUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	return &user, nil
}
