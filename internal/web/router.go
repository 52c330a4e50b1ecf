// Package web is the server-rendered front-end. Pages read through the
// services layer, which degrades to empty data instead of failing requests.
package web

import (
	"github.com/gin-gonic/gin"

	"investapp/internal/identity"
	"investapp/internal/middleware"
	"investapp/internal/models"
	"investapp/internal/services"
	"investapp/internal/storage"
)

// Handlers groups the page handlers and their dependencies.
type Handlers struct {
	accounts   *identity.AccountService
	portfolios *services.PortfolioService
	assets     *services.AssetService
	assetTypes *services.AssetTypeService
	histories  *services.AssetHistoryService
	links      *services.InvestmentAssetService
	images     *storage.ImageStore
}

// NewHandlers creates the page handlers.
func NewHandlers(
	accounts *identity.AccountService,
	portfolios *services.PortfolioService,
	assets *services.AssetService,
	assetTypes *services.AssetTypeService,
	histories *services.AssetHistoryService,
	links *services.InvestmentAssetService,
	images *storage.ImageStore,
) *Handlers {
	return &Handlers{
		accounts:   accounts,
		portfolios: portfolios,
		assets:     assets,
		assetTypes: assetTypes,
		histories:  histories,
		links:      links,
		images:     images,
	}
}

// NewRouter builds the web application router. templateGlob points at the
// HTML templates, uploadDir is served for profile images.
func NewRouter(h *Handlers, templateGlob, uploadDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.LoadHTMLGlob(templateGlob)
	router.Static("/uploads", uploadDir)

	// Public pages
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.GET("/confirm-email", h.ConfirmEmail)
	router.GET("/forgot-password", h.ShowForgotPassword)
	router.POST("/forgot-password", h.ForgotPassword)
	router.GET("/reset-password", h.ShowResetPassword)
	router.POST("/reset-password", h.ResetPassword)

	// Authenticated pages
	authed := router.Group("/")
	authed.Use(middleware.CookieAuthMiddleware())
	authed.GET("/", h.Home)
	authed.GET("/portfolios", h.Portfolios)
	authed.GET("/portfolios/new", h.ShowPortfolioForm)
	authed.POST("/portfolios", h.SavePortfolio)
	authed.GET("/portfolios/:id/edit", h.ShowPortfolioForm)
	authed.POST("/portfolios/:id", h.SavePortfolio)
	authed.POST("/portfolios/:id/delete", h.DeletePortfolio)
	authed.GET("/portfolios/:id", h.PortfolioDetail)
	authed.POST("/portfolios/:id/assets", h.LinkAsset)
	authed.POST("/investment-assets/:id/delete", h.UnlinkAsset)
	authed.GET("/profile", h.Profile)
	authed.POST("/profile/image", h.UploadProfileImage)

	// Administration pages
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	admin.GET("/users", h.Users)
	admin.GET("/users/:id/edit", h.ShowUserForm)
	admin.POST("/users/:id", h.SaveUser)
	admin.POST("/users/:id/delete", h.DeleteUser)
	admin.GET("/asset-types", h.AssetTypes)
	admin.GET("/asset-types/new", h.ShowAssetTypeForm)
	admin.POST("/asset-types", h.SaveAssetType)
	admin.GET("/asset-types/:id/edit", h.ShowAssetTypeForm)
	admin.POST("/asset-types/:id", h.SaveAssetType)
	admin.POST("/asset-types/:id/delete", h.DeleteAssetType)
	admin.GET("/assets", h.Assets)
	admin.GET("/assets/new", h.ShowAssetForm)
	admin.POST("/assets", h.SaveAsset)
	admin.GET("/assets/:id/edit", h.ShowAssetForm)
	admin.POST("/assets/:id", h.SaveAsset)
	admin.POST("/assets/:id/delete", h.DeleteAsset)
	admin.GET("/assets/:id/histories", h.AssetHistories)
	admin.POST("/assets/:id/histories", h.AddAssetHistory)
	admin.GET("/asset-histories/:id/edit", h.ShowAssetHistoryForm)
	admin.POST("/asset-histories/:id", h.SaveAssetHistory)
	admin.POST("/asset-histories/:id/delete", h.DeleteAssetHistory)

	return router
}
