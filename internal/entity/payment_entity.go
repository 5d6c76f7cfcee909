package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "PAYMENT"
	TransactionTypeRefund  TransactionType = "REFUND"
)

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusRefunded   TransactionStatus = "REFUNDED"
)

// PaymentTransaction records one gateway-level payment or refund attempt.
// TransactionId doubles as the idempotency key for gateway calls; ledger-only
// compensating entries get a synthetic one. GatewayResponse keeps the raw
// gateway payload for audit.
type PaymentTransaction struct {
	Id              uuid.UUID
	OrderId         uuid.UUID
	ReturnRequestId *uuid.UUID
	TransactionId   string
	Type            TransactionType
	Amount          float64
	Status          TransactionStatus
	GatewayResponse datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
