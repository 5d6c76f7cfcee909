package contract

import (
	"context"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	CreateBatch(ctx context.Context, items []*entity.OrderItem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error)

	// OpenReturnWindows flips all returnable items of an order to ACTIVE
	// with the given window bounds. Non-returnable items are untouched
	// (they stay NOT_APPLICABLE).
	OpenReturnWindows(ctx context.Context, orderId uuid.UUID, start, end time.Time) (int64, error)

	// SettleIfActive transitions one item ACTIVE -> COMPLETED and marks
	// earnings credited, but only while the item is still ACTIVE and
	// uncredited. Zero rows affected means another writer got there first.
	SettleIfActive(ctx context.Context, itemId uuid.UUID, now time.Time) (int64, error)

	// MarkReturnedIfActive transitions one item ACTIVE -> RETURNED and
	// stamps returned_at, under the same conditional-update guard.
	MarkReturnedIfActive(ctx context.Context, itemId uuid.UUID, now time.Time) (int64, error)

	// UpdateWhereStatus is the guarded escape hatch used by the admin
	// override path: arbitrary column updates, applied only while the item
	// still has the expected window status.
	UpdateWhereStatus(ctx context.Context, itemId uuid.UUID, expected entity.ReturnWindowStatus, updates map[string]interface{}) (int64, error)
}
