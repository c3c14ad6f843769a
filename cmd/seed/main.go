// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/catalogs/shop"
	"fixtrack/internal/infrastructure/storage/postgres"
	"fixtrack/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := getEnv("ADMIN_EMAIL", "admin@fixtrack.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "Admin123!")
	adminVendor := getEnv("ADMIN_VENDOR", "Central Warehouse")

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	adminID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, vendor, is_active, is_admin, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE, $6, $6, 1)
	`, adminID, adminEmail, string(hash), "Administrator", adminVendor, now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", adminID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	vendors := []struct {
		code, name   string
		repairCenter bool
	}{
		{"WH-CENTRAL", "Central Warehouse", true},
		{"WH-NORTH", "Northern Depot", false},
		{"WH-RENTAL", "Rental Warehouse", false},
	}
	for _, v := range vendors {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_vendors (id, code, name, is_repair_center, is_active, deletion_mark, version)
			VALUES ($1, $2, $3, $4, TRUE, FALSE, 1)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), v.code, v.name, v.repairCenter)
		if err != nil {
			return fmt.Errorf("insert vendor %s: %w", v.code, err)
		}
	}

	shops := []struct {
		code, name string
		shopType   shop.ShopType
	}{
		{"MCS-1001", "Central Rama 9", shop.TypeDepartmentStore},
		{"MCS-2002", "Siam Paragon", shop.TypeDepartmentStore},
		{"MCS-3003", "Chiang Mai Nimman", shop.TypeStandalone},
	}
	for _, s := range shops {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_shops (id, code, name, shop_type, is_active, deletion_mark, version)
			VALUES ($1, $2, $3, $4, TRUE, FALSE, 1)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), s.code, s.name, s.shopType)
		if err != nil {
			return fmt.Errorf("insert shop %s: %w", s.code, err)
		}
	}

	assets := []struct {
		barcode, name, size string
	}{
		{"BC-1001", "Display Table A", "120x60"},
		{"BC-1002", "Display Table A", "120x60"},
		{"BC-2001", "Wall Shelf B", "200x40"},
	}
	for _, a := range assets {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_assets (id, code, name, barcode, size, unit_cost, is_active, deletion_mark, version)
			VALUES ($1, $2, $3, $2, $4, 0, TRUE, FALSE, 1)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), a.barcode, a.name, a.size)
		if err != nil {
			return fmt.Errorf("insert asset %s: %w", a.barcode, err)
		}
	}

	log.Infow("demo data seeded",
		"vendors", len(vendors),
		"shops", len(shops),
		"assets", len(assets),
	)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
