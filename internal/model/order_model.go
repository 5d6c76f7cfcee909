package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber   string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	TotalAmount   float64   `gorm:"type:decimal(12,2);not null"`
	AdminNotes    string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	User  User        `gorm:"foreignKey:UserId"`
	Items []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}
