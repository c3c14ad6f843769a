package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fixtrack/internal/domain/approval"
	"fixtrack/internal/domain/auth"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/catalogs/shop"
	"fixtrack/internal/domain/catalogs/vendor"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/domain/picktask"
	"fixtrack/internal/infrastructure/http/v1/handlers"
	"fixtrack/internal/infrastructure/http/v1/middleware"
	"fixtrack/internal/infrastructure/storage/postgres"
	"fixtrack/pkg/logger"
)

// RouterConfig holds everything the router needs, wired once at startup.
type RouterConfig struct {
	Pool    *postgres.Pool
	Logger  *logger.Logger
	Version string

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AllowedOrigins for CORS; empty allows all.
	AllowedOrigins []string

	AuthService     *auth.Service
	DocumentService *document.Service
	ApprovalEngine  *approval.Engine
	PickTaskService *picktask.Service
	LedgerService   *ledger.Service
	AssetService    *asset.Service
	ShopService     *shop.Service
	VendorService   *vendor.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		// Auth: public endpoints plus JWT-protected profile routes.
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		publicAuth := api.Group("/auth")
		protectedAuth := api.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, baseHandler, cfg)
		registerDocumentRoutes(protected, baseHandler, cfg)
		registerTaskRoutes(protected, baseHandler, cfg)
		registerLedgerRoutes(protected, baseHandler, cfg)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	return cors.New(corsCfg)
}

// registerCatalogRoutes registers master data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")

	// --- ASSETS ---
	{
		handler := handlers.NewAssetHandler(base, cfg.AssetService)
		group := catalogs.Group("/assets")
		RegisterCatalogRoutes(group, handler)
		group.GET("/barcode/:barcode", handler.GetByBarcode)
	}

	// --- SHOPS ---
	{
		handler := handlers.NewShopHandler(base, cfg.ShopService)
		RegisterCatalogRoutes(catalogs.Group("/shops"), handler)
	}

	// --- VENDORS ---
	{
		handler := handlers.NewVendorHandler(base, cfg.VendorService)
		RegisterCatalogRoutes(catalogs.Group("/vendors"), handler)
	}
}

// registerDocumentRoutes registers document lifecycle endpoints.
// Approval and rejection are admin-only.
func registerDocumentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewDocumentHandler(base, cfg.DocumentService, cfg.ApprovalEngine)
	pickHandler := handlers.NewPickTaskHandler(base, cfg.PickTaskService)
	ledgerHandler := handlers.NewLedgerHandler(base, cfg.LedgerService)

	documents := rg.Group("/documents")
	documents.GET("", handler.List)
	documents.POST("", handler.Create)
	documents.GET("/:id", handler.Get)
	documents.PUT("/:id", handler.Update)
	documents.DELETE("/:id", handler.Delete)
	documents.POST("/:id/submit", handler.Submit)
	documents.POST("/:id/approve", middleware.RequireAdmin(), handler.Approve)
	documents.POST("/:id/reject", middleware.RequireAdmin(), handler.Reject)

	// Materialized records for one document.
	documents.GET("/:id/pick-tasks", pickHandler.ListByDocument)
	documents.GET("/:id/ledger", ledgerHandler.HistoryByDocument)
	documents.GET("/:id/security-sets", ledgerHandler.SecurityByDocument)
}

// registerTaskRoutes registers pick task endpoints.
func registerTaskRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewPickTaskHandler(base, cfg.PickTaskService)

	tasks := rg.Group("/pick-tasks")
	tasks.GET("", handler.List)
	tasks.GET("/:id", handler.Get)
	tasks.POST("/:id/complete", handler.Complete)
	tasks.POST("/:id/cancel", handler.Cancel)
}

// registerLedgerRoutes registers ledger read endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewLedgerHandler(base, cfg.LedgerService)

	ledgerGroup := rg.Group("/ledger")
	ledgerGroup.GET("/assets/:barcode", handler.HistoryByBarcode)
	ledgerGroup.GET("/repair-tasks", handler.RepairTasks)
}
