package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openmuse/openmuse-backend/internal/db"
	"github.com/openmuse/openmuse-backend/internal/handlers"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/middleware"
	"github.com/openmuse/openmuse-backend/internal/observability"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/server"
	"github.com/openmuse/openmuse-backend/internal/services"
	"github.com/openmuse/openmuse-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "openmuse-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("OTel shutdown failed", "error", err)
			}
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Database
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	assetRepo := repos.NewAssetRepo(thePG, log)
	mediaRepo := repos.NewMediaRepo(thePG, log)
	assetMediaRepo := repos.NewAssetMediaRepo(thePG, log)
	moderationEventRepo := repos.NewModerationEventRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService", "error", err)
	}
	videoURLService := services.NewVideoURLService(log, bucketService)
	galleryStore := services.NewGalleryStore(thePG, log, assetRepo, mediaRepo, assetMediaRepo, userRepo)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	assetService := services.NewAssetService(thePG, log, assetRepo)
	mediaService := services.NewMediaService(thePG, log, bucketService, mediaRepo, assetRepo, assetMediaRepo)
	moderationService := services.NewModerationService(thePG, log, assetRepo, mediaRepo, moderationEventRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(log, assetService, galleryStore, videoURLService)
	mediaHandler := handlers.NewMediaHandler(log, mediaService)
	moderationHandler := handlers.NewModerationHandler(log, moderationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		AssetHandler:      assetHandler,
		MediaHandler:      mediaHandler,
		ModerationHandler: moderationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
