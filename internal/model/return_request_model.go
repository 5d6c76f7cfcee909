package model

import (
	"time"

	"github.com/google/uuid"
)

type ReturnRequest struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderItemId uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason      string    `gorm:"type:text;not null"`
	ProductName string    `gorm:"type:varchar(255)"`
	Amount      float64   `gorm:"type:decimal(12,2);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AdminNotes  string    `gorm:"type:text"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	OrderItem OrderItem `gorm:"foreignKey:OrderItemId"`
	User      User      `gorm:"foreignKey:UserId"`
}

func (ReturnRequest) TableName() string {
	return "return_requests"
}
