package database

import (
	"errors"
	"fmt"

	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/password"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// SeedDefaultAdmin creates the bootstrap admin account when no user with
// that name exists yet. It reports whether a new account was created so
// the CLI can tell the operator to change the password.
func SeedDefaultAdmin(db *gorm.DB, bcryptCost int) (created bool, err error) {
	var existing models.AdminUserModel
	err = db.Where("username = ?", defaultAdminUsername).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up admin user: %w", err)
	}

	hashed, err := password.Hash(defaultAdminPassword, bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	user := models.AdminUserModel{
		Username: defaultAdminUsername,
		Password: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	return true, nil
}
