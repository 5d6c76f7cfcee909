package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderItem struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId            uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductId          *uuid.UUID `gorm:"type:uuid;index"`
	SellerId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductName        string     `gorm:"type:varchar(255);not null"`
	Quantity           int        `gorm:"not null"`
	Price              float64    `gorm:"type:decimal(12,2);not null"`
	IsReturnable       bool       `gorm:"default:false"`
	ReturnWindowStatus string     `gorm:"type:varchar(20);not null;default:'NOT_APPLICABLE';index:idx_order_items_sweep"`
	ReturnWindowStart  *time.Time
	ReturnWindowEnd    *time.Time `gorm:"index:idx_order_items_sweep"`
	ReturnedAt         *time.Time
	EarningsCredited   bool       `gorm:"default:false;index:idx_order_items_sweep"`
	EarningsCreditedAt *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`

	Seller Seller `gorm:"foreignKey:SellerId"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
