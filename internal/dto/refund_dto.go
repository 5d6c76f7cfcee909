package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProcessRefundRequest struct {
	RefundAmount float64 `json:"refund_amount" validate:"required,gt=0"`
	RefundNote   string  `json:"refund_note,omitempty"`
}

type ProcessRefundResponse struct {
	ReturnRequestId uuid.UUID `json:"return_request_id"`
	TransactionId   string    `json:"transaction_id"`
	RefundAmount    float64   `json:"refund_amount"`
	GatewayRefundId string    `json:"gateway_refund_id"`
	ProcessedAt     time.Time `json:"processed_at"`
}

type PaymentTransactionResponse struct {
	Id            uuid.UUID `json:"id"`
	OrderId       uuid.UUID `json:"order_id"`
	TransactionId string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
