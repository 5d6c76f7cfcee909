package entity

import (
	"time"

	"github.com/google/uuid"
)

type EarningType string

const (
	// EarningTypePostReturnWindow credits a seller once an item's return
	// window lapses without a return.
	EarningTypePostReturnWindow EarningType = "POST_RETURN_WINDOW"
)

type EarningStatus string

const (
	EarningStatusCompleted EarningStatus = "COMPLETED"
)

// SellerEarning is an immutable ledger entry documenting a single earnings
// credit. At most one row per order item ever reaches CreditedToBalance=true.
type SellerEarning struct {
	Id                uuid.UUID
	SellerId          uuid.UUID
	OrderItemId       uuid.UUID
	GrossAmount       float64
	Commission        float64
	Amount            float64
	Type              EarningType
	Status            EarningStatus
	CreditedToBalance bool
	CreditedAt        *time.Time
	CreatedAt         time.Time
}
