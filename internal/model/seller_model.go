package model

import (
	"time"

	"github.com/google/uuid"
)

// Seller has no soft delete: financial history (earnings, payouts) must
// survive deactivation, which is expressed via status on the owning user.
type Seller struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StoreName      string    `gorm:"type:varchar(255);not null"`
	Balance        float64   `gorm:"type:decimal(12,2);not null;default:0"`
	PayoutsEnabled bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId"`
}

func (Seller) TableName() string {
	return "sellers"
}
