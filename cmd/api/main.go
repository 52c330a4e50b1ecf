package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"investapp/internal/commands"
	"investapp/internal/config"
	"investapp/internal/database"
	"investapp/internal/handlers"
	"investapp/internal/identity"
	"investapp/internal/logger"
	"investapp/internal/mailer"
	"investapp/internal/middleware"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/storage"
	"investapp/internal/validator"

	_ "investapp/internal/docs" // Import swagger docs
)

// @title           InvestApp API
// @version         1.0
// @description     InvestApp lets investors track assets, record their price history, and organize them into personal portfolios.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Create database manager and run migrations
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize repositories
	db := dbManager.DB()
	if err := database.SeedDefaultUsers(db, appConfig.SeedUserPassword); err != nil {
		return fmt.Errorf("failed to seed default users: %w", err)
	}
	userRepo := repository.NewUserRepository(db)
	assetTypeRepo := repository.NewAssetTypeRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	historyRepo := repository.NewAssetHistoryRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	linkRepo := repository.NewInvestmentAssetRepository(db)

	// Initialize supporting services
	sender := mailer.NewSMTPSender(appConfig)
	images, err := storage.NewImageStore(appConfig.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to create image store: %w", err)
	}
	accounts := identity.NewAccountService(userRepo, sender)

	// Initialize command handlers
	assetTypeCommands := commands.NewAssetTypeCommands(assetTypeRepo)
	assetCommands := commands.NewAssetCommands(assetRepo, assetTypeRepo, linkRepo)
	historyCommands := commands.NewAssetHistoryCommands(historyRepo, assetRepo)
	portfolioCommands := commands.NewPortfolioCommands(portfolioRepo)
	linkCommands := commands.NewInvestmentAssetCommands(linkRepo, assetRepo, portfolioRepo)

	// Initialize HTTP handlers
	authHandler := handlers.NewAuthHandler(accounts)
	userHandler := handlers.NewUserHandler(accounts, images)
	assetTypeHandler := handlers.NewAssetTypeHandler(assetTypeCommands)
	assetHandler := handlers.NewAssetHandler(assetCommands)
	historyHandler := handlers.NewAssetHistoryHandler(historyCommands)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioCommands)
	linkHandler := handlers.NewInvestmentAssetHandler(linkCommands)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/confirm-email", authHandler.ConfirmEmail)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/users/profile-image", userHandler.UploadProfileImage)

	// Asset catalog reads are open to every authenticated user
	protected.GET("/asset-types", assetTypeHandler.GetAssetTypes)
	protected.GET("/asset-types/:id", assetTypeHandler.GetAssetTypeByID)
	protected.GET("/assets", assetHandler.GetAssets)
	protected.GET("/assets/:id", assetHandler.GetAssetByID)
	protected.GET("/assets/:id/histories", historyHandler.GetAssetHistories)
	protected.GET("/asset-histories/:id", historyHandler.GetAssetHistoryByID)

	// Portfolios are scoped to the caller
	protected.POST("/portfolios", portfolioHandler.CreatePortfolio)
	protected.GET("/portfolios", portfolioHandler.GetPortfolios)
	protected.GET("/portfolios/:id", portfolioHandler.GetPortfolioByID)
	protected.PUT("/portfolios/:id", portfolioHandler.UpdatePortfolio)
	protected.DELETE("/portfolios/:id", portfolioHandler.DeletePortfolio)
	protected.GET("/portfolios/:id/assets", assetHandler.GetAssetsByPortfolio)
	protected.GET("/portfolios/:id/investment-assets", linkHandler.GetInvestmentAssetsByPortfolio)
	protected.POST("/investment-assets", linkHandler.CreateInvestmentAsset)
	protected.GET("/investment-assets/:id", linkHandler.GetInvestmentAssetByID)
	protected.DELETE("/investment-assets/:id", linkHandler.DeleteInvestmentAsset)

	// Catalog writes and user administration are admin only
	admin := protected.Group("/")
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))

	admin.POST("/asset-types", assetTypeHandler.CreateAssetType)
	admin.PUT("/asset-types/:id", assetTypeHandler.UpdateAssetType)
	admin.DELETE("/asset-types/:id", assetTypeHandler.DeleteAssetType)
	admin.POST("/assets", assetHandler.CreateAsset)
	admin.PUT("/assets/:id", assetHandler.UpdateAsset)
	admin.DELETE("/assets/:id", assetHandler.DeleteAsset)
	admin.POST("/asset-histories", historyHandler.CreateAssetHistory)
	admin.PUT("/asset-histories/:id", historyHandler.UpdateAssetHistory)
	admin.DELETE("/asset-histories/:id", historyHandler.DeleteAssetHistory)
	admin.GET("/users", userHandler.GetUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.GET("/users/:id", userHandler.GetUserByID)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)

	// API v2 group
	v2 := router.Group("/api/v2")
	v2.Use(middleware.AuthMiddleware())
	v2.GET("/asset-types", assetTypeHandler.GetAssetTypesWithAssets)

	logger.Get().Infow("starting API server", "port", appConfig.APIPort)
	return router.Run(":" + appConfig.APIPort)
}
