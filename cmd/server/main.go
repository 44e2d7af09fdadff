package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/patriotthanks/patriotthanks-backend/config"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/controller"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/patriotthanks/patriotthanks-backend/internal/middleware"
	"github.com/patriotthanks/patriotthanks-backend/internal/router"
	"github.com/patriotthanks/patriotthanks-backend/internal/scheduler"
	"github.com/patriotthanks/patriotthanks-backend/internal/storage"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"github.com/patriotthanks/patriotthanks-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console",
		EnableColor: true,
	})

	logger.Info("Starting Patriot Thanks API server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed lookup data", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to connect to Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	businessRepo := repository.NewBusinessRepository(db.GetDB())
	incentiveRepo := repository.NewIncentiveRepository(db.GetDB())
	schoolRepo := repository.NewSchoolRepository(db.GetDB())
	lookupRepo := repository.NewLookupRepository(db.GetDB())

	// Services
	schoolService := service.NewSchoolService(schoolRepo)
	authService := service.NewAuthService(userRepo, schoolService, &cfg.JWT)
	businessService := service.NewBusinessService(db.GetDB(), businessRepo, incentiveRepo, lookupRepo)
	incentiveService := service.NewIncentiveService(db.GetDB(), incentiveRepo, businessRepo, lookupRepo)
	lookupService := service.NewLookupService(lookupRepo)

	// Storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret)
	businessController := controller.NewBusinessController(businessService)
	incentiveController := controller.NewIncentiveController(incentiveService)
	schoolController := controller.NewSchoolController(schoolService)
	lookupController := controller.NewLookupController(lookupService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		businessController,
		incentiveController,
		schoolController,
		lookupController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	expiryAudit := scheduler.NewExpiryAuditScheduler(incentiveService)
	if err := expiryAudit.Start(); err != nil {
		logger.Error("Failed to start expiry audit scheduler", err)
	}
	defer expiryAudit.Stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
