package contract

import (
	"context"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SellerEarningRepository interface {
	Create(ctx context.Context, earning *entity.SellerEarning) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SellerEarning, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SellerEarning, error)
	CountCreditedForItem(ctx context.Context, itemId uuid.UUID) (int64, error)
}
