package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo enforces forward-only order progression. Cancellation is
// only valid from pre-fulfillment states (PENDING, CONFIRMED).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

type ReturnWindowStatus string

const (
	ReturnWindowNotApplicable ReturnWindowStatus = "NOT_APPLICABLE"
	ReturnWindowActive        ReturnWindowStatus = "ACTIVE"
	ReturnWindowCompleted     ReturnWindowStatus = "COMPLETED"
	ReturnWindowReturned      ReturnWindowStatus = "RETURNED"
)

// ParseReturnWindowStatus rejects anything outside the closed enum, replacing
// ad-hoc string membership checks at the API boundary.
func ParseReturnWindowStatus(s string) (ReturnWindowStatus, error) {
	switch ReturnWindowStatus(s) {
	case ReturnWindowNotApplicable, ReturnWindowActive, ReturnWindowCompleted, ReturnWindowReturned:
		return ReturnWindowStatus(s), nil
	}
	return "", fmt.Errorf("invalid return window status: %q", s)
}

// CanTransitionTo encodes the window lifecycle: ACTIVE may advance to
// COMPLETED or RETURNED; COMPLETED and RETURNED are terminal; NOT_APPLICABLE
// only moves under explicit admin reconfiguration (to ACTIVE).
func (s ReturnWindowStatus) CanTransitionTo(next ReturnWindowStatus) bool {
	switch s {
	case ReturnWindowActive:
		return next == ReturnWindowCompleted || next == ReturnWindowReturned
	case ReturnWindowNotApplicable:
		return next == ReturnWindowActive
	case ReturnWindowCompleted, ReturnWindowReturned:
		return false
	}
	return false
}

type Order struct {
	Id            uuid.UUID
	OrderNumber   string
	UserId        uuid.UUID
	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	TotalAmount   float64
	AdminNotes    string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []*OrderItem
}

// OrderItem is one line of an order, fulfilled by exactly one seller.
// ProductId is nullable: a product may be deleted after purchase, so the item
// carries snapshots (ProductName, Price, IsReturnable) taken at order time.
type OrderItem struct {
	Id                 uuid.UUID
	OrderId            uuid.UUID
	ProductId          *uuid.UUID
	SellerId           uuid.UUID
	ProductName        string
	Quantity           int
	Price              float64
	IsReturnable       bool
	ReturnWindowStatus ReturnWindowStatus
	ReturnWindowStart  *time.Time
	ReturnWindowEnd    *time.Time
	ReturnedAt         *time.Time
	EarningsCredited   bool
	EarningsCreditedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// WindowOpen reports whether the item can still be returned at the given time.
func (i *OrderItem) WindowOpen(now time.Time) bool {
	return i.ReturnWindowStatus == ReturnWindowActive &&
		i.ReturnWindowEnd != nil && now.Before(*i.ReturnWindowEnd)
}

// WindowExpired reports whether the item is eligible for settlement.
func (i *OrderItem) WindowExpired(now time.Time) bool {
	return i.ReturnWindowStatus == ReturnWindowActive &&
		!i.EarningsCredited &&
		i.ReturnWindowEnd != nil && now.After(*i.ReturnWindowEnd)
}
