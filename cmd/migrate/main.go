package main

import (
	"log"
	"os"

	"marketplace-be/internal/model"
	"marketplace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting authoritative GORM migration...")

	// 3. Pre-migration: extensions & enums (things AutoMigrate doesn't do)
	color.Yellow("Step 1: Setting up extensions and enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('customer', 'seller', 'admin'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN CREATE TYPE user_status AS ENUM ('active', 'suspended', 'deleted'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status') THEN CREATE TYPE order_status AS ENUM ('PENDING', 'CONFIRMED', 'SHIPPED', 'DELIVERED', 'CANCELLED'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN CREATE TYPE payment_status AS ENUM ('PENDING', 'SUCCESSFUL', 'FAILED', 'REFUNDED'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'return_window_status') THEN CREATE TYPE return_window_status AS ENUM ('NOT_APPLICABLE', 'ACTIVE', 'COMPLETED', 'RETURNED'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'return_status') THEN CREATE TYPE return_status AS ENUM ('PENDING', 'APPROVED', 'REJECTED'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate all models
	color.Yellow("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Seller{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ReturnRequest{},
		&model.SellerEarning{},
		&model.PaymentTransaction{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-migration: constraints AutoMigrate cannot express
	color.Yellow("Step 3: Creating partial unique indexes...")

	postMigrationSQL := []string{
		// The database-level backstop for at-most-one credited earning
		// per order item, regardless of application bugs.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_seller_earnings_credited_item
		 ON seller_earnings (order_item_id) WHERE credited_to_balance = true;`,

		// At most one non-rejected return request per order item.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_return_requests_active_item
		 ON return_requests (order_item_id) WHERE status <> 'REJECTED';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	color.Green("Migration completed successfully.")
}
