package main

import (
	"fmt"
	"os"

	"investapp/internal/config"
	"investapp/internal/database"
	"investapp/internal/identity"
	"investapp/internal/logger"
	"investapp/internal/mailer"
	"investapp/internal/repository"
	"investapp/internal/services"
	"investapp/internal/storage"
	"investapp/internal/web"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userRepo := repository.NewUserRepository(db)
	assetTypeRepo := repository.NewAssetTypeRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	historyRepo := repository.NewAssetHistoryRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	linkRepo := repository.NewInvestmentAssetRepository(db)

	sender := mailer.NewSMTPSender(appConfig)
	images, err := storage.NewImageStore(appConfig.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to create image store: %w", err)
	}

	handlers := web.NewHandlers(
		identity.NewAccountService(userRepo, sender),
		services.NewPortfolioService(portfolioRepo),
		services.NewAssetService(assetRepo, linkRepo),
		services.NewAssetTypeService(assetTypeRepo),
		services.NewAssetHistoryService(historyRepo),
		services.NewInvestmentAssetService(linkRepo),
		images,
	)

	router := web.NewRouter(handlers, "internal/web/templates/*.html", appConfig.UploadDir)

	logger.Get().Infow("starting web server", "port", appConfig.WebPort)
	return router.Run(":" + appConfig.WebPort)
}
