package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitReturnRequest struct {
	OrderId     uuid.UUID `json:"order_id" validate:"required"`
	Reason      string    `json:"reason" validate:"required,min=10"`
	ProductName string    `json:"product_name,omitempty"`
	Price       float64   `json:"price,omitempty"`
}

type SubmitReturnResponse struct {
	ReturnRequestId uuid.UUID `json:"return_request_id"`
	OrderItemId     uuid.UUID `json:"order_item_id"`
	Status          string    `json:"status"`
}

type ReturnRequestResponse struct {
	Id          uuid.UUID  `json:"id"`
	OrderId     uuid.UUID  `json:"order_id"`
	OrderItemId uuid.UUID  `json:"order_item_id"`
	ProductName string     `json:"product_name"`
	Reason      string     `json:"reason"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AdminReturnDecisionRequest approves or rejects a pending return request.
type AdminReturnDecisionRequest struct {
	Status     string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// AdminReturnStatusOverrideRequest is the administrative escape hatch into
// the item state machine.
type AdminReturnStatusOverrideRequest struct {
	ReturnWindowStatus  string `json:"return_window_status" validate:"required"`
	Notes               string `json:"notes,omitempty"`
	SetEarningsCredited *bool  `json:"set_earnings_credited,omitempty"`
	UpdateReturnWindow  bool   `json:"update_return_window,omitempty"`
	ReturnWindowDays    int    `json:"return_window_days,omitempty" validate:"omitempty,min=1,max=30"`
}

type AdminReturnStatusOverrideResponse struct {
	OrderItemId        uuid.UUID `json:"order_item_id"`
	ReturnWindowStatus string    `json:"return_window_status"`
	EarningsCredited   bool      `json:"earnings_credited"`
	Applied            bool      `json:"applied"`
}
