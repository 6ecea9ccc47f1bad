// Package seed bootstraps the records the application expects at startup.
package seed

import (
	"time"

	"gorm.io/gorm"

	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/utils"
)

// DefaultAdminEmail is the bootstrap account created on first start.
const DefaultAdminEmail = "test@me.com"

const defaultAdminPassword = "password"

// Ensure idempotently creates the superuser role and the default admin
// account holding it. Safe to run on every start.
func Ensure(db *gorm.DB) error {
	var role models.Role
	err := db.Where("name = ?", models.SuperuserRole).First(&role).Error
	if err == gorm.ErrRecordNotFound {
		role = models.Role{
			Name:        models.SuperuserRole,
			Description: "full access to the admin back-office",
		}
		err = db.Create(&role).Error
	}
	if err != nil {
		return err
	}

	var user models.User
	err = db.Where("email = ?", DefaultAdminEmail).First(&user).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := utils.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user = models.User{
		Email:       DefaultAdminEmail,
		Password:    hash,
		Active:      true,
		ConfirmedAt: &now,
		Roles:       []models.Role{role},
	}
	return db.Create(&user).Error
}
