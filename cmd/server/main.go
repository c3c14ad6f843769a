// Package main is the entry point for the fixtrack API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fixtrack/internal/domain/approval"
	"fixtrack/internal/domain/auth"
	"fixtrack/internal/domain/catalogs/asset"
	"fixtrack/internal/domain/catalogs/shop"
	"fixtrack/internal/domain/catalogs/vendor"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/domain/ledger"
	"fixtrack/internal/domain/picktask"
	v1 "fixtrack/internal/infrastructure/http/v1"
	"fixtrack/internal/infrastructure/storage/postgres"
	"fixtrack/internal/infrastructure/storage/postgres/auth_repo"
	"fixtrack/internal/infrastructure/storage/postgres/catalog_repo"
	"fixtrack/internal/infrastructure/storage/postgres/document_repo"
	"fixtrack/internal/infrastructure/storage/postgres/ledger_repo"
	"fixtrack/internal/infrastructure/storage/postgres/picktask_repo"
	"fixtrack/pkg/docnum"
	"fixtrack/pkg/logger"
)

const version = "1.0.0"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting fixtrack server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Document numbering ---
	numbers := docnum.New(pool.Pool)

	// --- Catalogs ---
	assetRepo := catalog_repo.NewAssetRepo(txManager)
	shopRepo := catalog_repo.NewShopRepo(txManager)
	vendorRepo := catalog_repo.NewVendorRepo(txManager)

	assetService := asset.NewService(assetRepo, txManager)
	shopService := shop.NewService(shopRepo, txManager)
	vendorService := vendor.NewService(vendorRepo, txManager, numbers)

	// --- Documents, tasks, ledger ---
	documentRepo := document_repo.NewDocumentRepo(txManager)
	pickTaskRepo := picktask_repo.NewPickTaskRepo(txManager)
	historyRepo := ledger_repo.NewHistoryRepo(txManager)
	securityRepo := ledger_repo.NewSecurityRepo(txManager)
	repairRepo := ledger_repo.NewRepairRepo(txManager)

	documentService := document.NewService(documentRepo, numbers, txManager)
	pickTaskService := picktask.NewService(pickTaskRepo, txManager)
	ledgerService := ledger.NewService(historyRepo, securityRepo, repairRepo)

	// --- Approval engine ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	engine := approval.NewEngine(
		documentRepo,
		pickTaskRepo,
		historyRepo,
		securityRepo,
		repairRepo,
		assetRepo,
		shopService,
		txManager,
		auditService,
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		Version:         version,
		JWTValidator:    jwtService,
		AllowedOrigins:  splitEnv("CORS_ALLOWED_ORIGINS"),
		AuthService:     authService,
		DocumentService: documentService,
		ApprovalEngine:  engine,
		PickTaskService: pickTaskService,
		LedgerService:   ledgerService,
		AssetService:    assetService,
		ShopService:     shopService,
		VendorService:   vendorService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
