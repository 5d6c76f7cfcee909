package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderItemRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	PaymentMethod string                   `json:"payment_method" validate:"required,oneof=COD ONLINE"`
	Items         []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemResponse struct {
	Id                 uuid.UUID  `json:"id"`
	ProductId          *uuid.UUID `json:"product_id,omitempty"`
	SellerId           uuid.UUID  `json:"seller_id"`
	ProductName        string     `json:"product_name"`
	Quantity           int        `json:"quantity"`
	Price              float64    `json:"price"`
	IsReturnable       bool       `json:"is_returnable"`
	ReturnWindowStatus string     `json:"return_window_status"`
	ReturnWindowEnd    *time.Time `json:"return_window_end,omitempty"`
	ReturnedAt         *time.Time `json:"returned_at,omitempty"`
}

type OrderResponse struct {
	Id            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	TotalAmount   float64             `json:"total_amount"`
	AdminNotes    string              `json:"admin_notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// AdminOrderDecisionRequest covers both accept and reject. Notes are optional
// on accept but mandatory on reject (enforced by the service).
type AdminOrderDecisionRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

type AdminOrderRejectResponse struct {
	OrderId       uuid.UUID `json:"order_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	RefundIssued  bool      `json:"refund_issued"`
	GatewayError  string    `json:"gateway_error,omitempty"`
}
