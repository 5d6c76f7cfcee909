package model

import (
	"time"

	"github.com/google/uuid"
)

// SellerEarning rows are append-only; there is no soft delete and no update
// path. The partial unique index backs the at-most-one-credit-per-item rule
// at the storage level (created in cmd/migrate).
type SellerEarning struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SellerId          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemId       uuid.UUID `gorm:"type:uuid;not null;index"`
	GrossAmount       float64   `gorm:"type:decimal(12,2);not null"`
	Commission        float64   `gorm:"type:decimal(12,2);not null"`
	Amount            float64   `gorm:"type:decimal(12,2);not null"`
	Type              string    `gorm:"type:varchar(30);not null"`
	Status            string    `gorm:"type:varchar(20);not null"`
	CreditedToBalance bool      `gorm:"default:false"`
	CreditedAt        *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`

	Seller Seller `gorm:"foreignKey:SellerId"`
}

func (SellerEarning) TableName() string {
	return "seller_earnings"
}
