package specification

import (
	"time"

	"marketplace-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByUser filters rows belonging to a customer.
type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OwnedBySeller filters rows belonging to a seller.
type OwnedBySeller struct {
	SellerID uuid.UUID
}

func (s OwnedBySeller) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("seller_id = ?", s.SellerID)
}

// ByOrder filters order items / return requests of one order.
type ByOrder struct {
	OrderID uuid.UUID
}

func (s ByOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

// ByOrderItem filters rows referencing one order item.
type ByOrderItem struct {
	OrderItemID uuid.UUID
}

func (s ByOrderItem) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_item_id = ?", s.OrderItemID)
}

// ExpiredReturnWindows selects items eligible for settlement: window still
// ACTIVE, past its end, earnings not yet credited. The earnings_credited
// filter is what makes re-running the sweep naturally idempotent.
type ExpiredReturnWindows struct {
	Now time.Time
}

func (s ExpiredReturnWindows) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("return_window_status = ? AND return_window_end < ? AND earnings_credited = ?",
		string(entity.ReturnWindowActive), s.Now, false)
}
