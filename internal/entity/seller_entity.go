package entity

import (
	"time"

	"github.com/google/uuid"
)

// Seller owns a running balance of net earnings. The balance is only ever
// mutated through atomic increments inside the same transaction that writes
// the correlating SellerEarning or Payout row.
type Seller struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	StoreName      string
	Balance        float64
	PayoutsEnabled bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
