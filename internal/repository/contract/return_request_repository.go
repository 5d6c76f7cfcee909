package contract

import (
	"context"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReturnRequestRepository interface {
	Create(ctx context.Context, req *entity.ReturnRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error)
	Update(ctx context.Context, req *entity.ReturnRequest) error

	// MarkProcessed stamps processed_at only when it is still unset,
	// returning the number of rows updated. Zero rows means another
	// refund already claimed the request.
	MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)

	// ActiveExistsForItem reports whether a non-rejected request already
	// references the item (at most one active request per item).
	ActiveExistsForItem(ctx context.Context, itemId uuid.UUID) (bool, error)
}
