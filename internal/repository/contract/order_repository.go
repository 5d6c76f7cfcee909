package contract

import (
	"context"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error

	// TransitionStatus performs a guarded status change: the row is only
	// updated while still in the expected state. Returns the number of rows
	// affected; zero means the precondition no longer held.
	TransitionStatus(ctx context.Context, orderId uuid.UUID, from, to entity.OrderStatus, extra map[string]interface{}) (int64, error)
}
