package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentTransaction struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReturnRequestId *uuid.UUID `gorm:"type:uuid;index"`
	TransactionId   string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type            string     `gorm:"type:varchar(20);not null"`
	Amount          float64    `gorm:"type:decimal(12,2);not null"`
	Status          string     `gorm:"type:varchar(20);not null"`
	GatewayResponse datatypes.JSON
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	Order Order `gorm:"foreignKey:OrderId"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
