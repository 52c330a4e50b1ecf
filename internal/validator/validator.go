// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"investapp/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("asset_order", validateAssetOrder)
	}
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.RoleAdmin, models.RoleInvestor, models.RoleSuperAdmin:
		return true
	}
	return false
}

func validateAssetOrder(fl validator.FieldLevel) bool {
	return models.AssetOrder(fl.Field().Int()).Valid()
}
