package database

import (
	"fmt"

	"investapp/internal/logger"
	"investapp/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDefaultUsers creates the default super admin and investor accounts
// when the users table is empty. Both accounts are pre-confirmed and share
// the configured seed password.
func SeedDefaultUsers(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	defaults := []models.User{
		{
			Email:          "admin@investapp.local",
			Username:       "admin",
			Password:       string(hashed),
			Name:           "Default",
			LastName:       "Admin",
			Role:           models.RoleSuperAdmin,
			EmailConfirmed: true,
		},
		{
			Email:          "investor@investapp.local",
			Username:       "investor",
			Password:       string(hashed),
			Name:           "Default",
			LastName:       "Investor",
			Role:           models.RoleInvestor,
			EmailConfirmed: true,
		},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", defaults[i].Username, err)
		}
		logger.Get().Infow("seeded default user",
			"username", defaults[i].Username,
			"role", defaults[i].Role,
		)
	}
	return nil
}
