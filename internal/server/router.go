package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/openmuse/openmuse-backend/internal/handlers"
	"github.com/openmuse/openmuse-backend/internal/middleware"
	"github.com/openmuse/openmuse-backend/internal/utils"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	AssetHandler      *handlers.AssetHandler
	MediaHandler      *handlers.MediaHandler
	ModerationHandler *handlers.ModerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("openmuse-backend"))

	allowedOrigins := strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Public reads carry the viewer when a token is present; the gallery
	// pipeline decides what that viewer may see.
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		api.GET("/assets", cfg.AssetHandler.List)
		api.GET("/assets/:id", cfg.AssetHandler.Detail)
		api.GET("/users/:id/profile", cfg.UserHandler.GetProfile)
	}

	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/logout", cfg.AuthHandler.Logout)

		protected.GET("/api/user", cfg.UserHandler.GetMe)
		protected.PATCH("/api/user", cfg.UserHandler.UpdateMe)

		protected.POST("/api/assets", cfg.AssetHandler.Create)
		protected.PATCH("/api/assets/:id", cfg.AssetHandler.Update)
		protected.DELETE("/api/assets/:id", cfg.AssetHandler.Delete)
		protected.PUT("/api/assets/:id/status", cfg.AssetHandler.SetUserStatus)
		protected.PUT("/api/assets/:id/primary-media", cfg.AssetHandler.SetPrimaryMedia)
		protected.PUT("/api/assets/:id/videos/:mediaId/status", cfg.AssetHandler.SetVideoStatus)

		protected.POST("/api/media", cfg.MediaHandler.Upload)
		protected.DELETE("/api/media/:id", cfg.MediaHandler.Delete)
		protected.GET("/api/user/media", cfg.MediaHandler.ListMine)
	}

	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.PUT("/assets/:id/admin-status", cfg.ModerationHandler.SetAssetAdminStatus)
		admin.PUT("/media/:id/admin-status", cfg.ModerationHandler.SetMediaAdminStatus)
		admin.GET("/:kind/:id/history", cfg.ModerationHandler.History)
	}

	return router
}
