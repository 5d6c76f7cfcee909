package main

import (
	"log"
	"os"

	"marketplace-be/internal/model"
	"marketplace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds a minimal working dataset: one admin, one customer, one seller with
// two products (one returnable, one not). Idempotent on email / store name.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding marketplace data...")

	admin := seedUser(db, "admin@marketplace.local", "Marketplace Admin", "admin")
	customer := seedUser(db, "customer@marketplace.local", "Demo Customer", "customer")
	sellerUser := seedUser(db, "seller@marketplace.local", "Demo Seller", "seller")
	_ = admin
	_ = customer

	seller := model.Seller{
		Id:        uuid.New(),
		UserId:    sellerUser.Id,
		StoreName: "Demo Store",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seller).Error; err != nil {
		log.Fatalf("Error: Failed to seed seller: %v", err)
	}
	db.Where("user_id = ?", sellerUser.Id).First(&seller)

	products := []model.Product{
		{
			Id:           uuid.New(),
			SellerId:     seller.Id,
			Name:         "Wireless Headphones",
			Description:  "Over-ear, 30h battery",
			Price:        500,
			Stock:        25,
			IsReturnable: true,
			Status:       "active",
		},
		{
			Id:           uuid.New(),
			SellerId:     seller.Id,
			Name:         "Gift Card",
			Description:  "Non-returnable digital voucher",
			Price:        100,
			Stock:        1000,
			IsReturnable: false,
			Status:       "active",
		},
	}
	for _, p := range products {
		var count int64
		db.Model(&model.Product{}).Where("seller_id = ? AND name = ?", p.SellerId, p.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Error: Failed to seed product %q: %v", p.Name, err)
		}
	}

	color.Green("Seed completed.")
	color.White("  admin:    admin@marketplace.local / password123")
	color.White("  customer: customer@marketplace.local / password123")
	color.White("  seller:   seller@marketplace.local / password123")
}

func seedUser(db *gorm.DB, email, name, role string) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
		Status:       "active",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to seed user %s: %v", email, err)
	}
	db.Where("email = ?", email).First(&user)
	return user
}
