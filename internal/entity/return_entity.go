package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "PENDING"
	ReturnStatusApproved ReturnStatus = "APPROVED"
	ReturnStatusRejected ReturnStatus = "REJECTED"
)

// ReturnRequest is a customer-initiated return referencing one order item.
// At most one non-rejected request may exist per item.
type ReturnRequest struct {
	Id          uuid.UUID
	OrderItemId uuid.UUID
	OrderId     uuid.UUID
	UserId      uuid.UUID
	Reason      string
	ProductName string
	Amount      float64
	Status      ReturnStatus
	AdminNotes  string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
