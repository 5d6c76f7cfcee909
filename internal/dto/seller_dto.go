package dto

import (
	"time"

	"github.com/google/uuid"
)

type SellerEarningResponse struct {
	Id          uuid.UUID  `json:"id"`
	OrderItemId uuid.UUID  `json:"order_item_id"`
	GrossAmount float64    `json:"gross_amount"`
	Commission  float64    `json:"commission"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreditedAt  *time.Time `json:"credited_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SellerBalanceResponse struct {
	SellerId       uuid.UUID `json:"seller_id"`
	StoreName      string    `json:"store_name"`
	Balance        float64   `json:"balance"`
	PayoutsEnabled bool      `json:"payouts_enabled"`
	TotalEarnings  int       `json:"total_earnings"`
}
