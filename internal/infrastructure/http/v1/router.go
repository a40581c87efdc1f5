// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/idempotency"
	"adminsuite/internal/domain/analytics"
	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/reports"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/http/v1/handlers"
	"adminsuite/internal/infrastructure/http/v1/middleware"
	"adminsuite/pkg/logger"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// DB backs the readiness probe; nil reports "not configured".
	DB handlers.Database

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Idempotency backs X-Idempotency-Key on POST and PUT; nil disables replay.
	Idempotency idempotency.Store

	AuthService      *auth.Service
	UsersService     *users.Service
	AnalyticsService *analytics.Service
	InventoryService *inventory.Service
	ReportsService   *reports.Service

	// Debug keeps gin in debug mode.
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Order matters: ErrorHandler must see errors set by Recovery.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	idempotent := middleware.Idempotency(cfg.Idempotency)
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService, cfg.UsersService)
		protectedAuth := v1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		authHandler.RegisterRoutes(v1.Group("/auth"), protectedAuth, idempotent)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerUserRoutes(protected, base, cfg, idempotent)
		registerInventoryRoutes(protected, base, cfg)
		registerAnalyticsRoutes(protected, base, cfg)
		registerReportRoutes(protected, base, cfg)
	}

	return router
}

// registerUserRoutes registers the users table for moderation roles and
// account changes for ADMIN only.
func registerUserRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, idempotent gin.HandlerFunc) {
	handler := handlers.NewUsersHandler(base, cfg.UsersService)

	group := rg.Group("/users")
	group.Use(middleware.RequireRole(string(users.RoleAdmin), string(users.RoleModerator)))
	RegisterTableRoutes(group, handler, "users")
	group.GET("/:id/history", middleware.RequirePermission("users:read"), handler.History)

	RegisterWriteRoutes(group, handler, idempotent,
		middleware.RequireRole(string(users.RoleAdmin)),
		middleware.RequirePermission("users:write"))
}

func registerInventoryRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	RegisterTableRoutes(rg.Group("/inventory"), handlers.NewInventoryHandler(base, cfg.InventoryService), "inventory")
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	group := rg.Group("/analytics")
	group.Use(middleware.RequirePermission("analytics:read"))
	handlers.NewAnalyticsHandler(base, cfg.AnalyticsService).RegisterRoutes(group)
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	group := rg.Group("/reports")
	group.Use(middleware.RequirePermission("reports:export"))
	handlers.NewReportsHandler(base, cfg.ReportsService).RegisterRoutes(group)
}
