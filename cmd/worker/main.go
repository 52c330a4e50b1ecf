package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"investapp/internal/config"
	"investapp/internal/database"
	"investapp/internal/jobs"
	"investapp/internal/logger"
	"investapp/internal/mailer"
	"investapp/internal/repository"
	"investapp/internal/services"
)

func main() {
	now := flag.Bool("now", false, "run every job once and exit")
	flag.Parse()

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(*now); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(runOnce bool) error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	db := dbManager.DB()
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	linkRepo := repository.NewInvestmentAssetRepository(db)

	assetService := services.NewAssetService(assetRepo, linkRepo)
	sender := mailer.NewSMTPSender(appConfig)

	scheduler := jobs.NewScheduler()
	priceAlert := jobs.NewPriceAlertJob(assetService, userRepo, sender)

	if runOnce {
		return scheduler.RunNow(priceAlert)
	}

	if err := scheduler.AddJob(appConfig.PriceAlertSchedule, priceAlert); err != nil {
		return fmt.Errorf("failed to register price alert job: %w", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Get().Infow("shutting down worker")
	return nil
}
