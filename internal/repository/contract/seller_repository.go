package contract

import (
	"context"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Seller, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Seller, error)
	Update(ctx context.Context, seller *entity.Seller) error

	// IncrementBalance applies an atomic balance adjustment at the store
	// level (balance = balance + delta). Callers never read-modify-write.
	IncrementBalance(ctx context.Context, sellerId uuid.UUID, delta float64) error

	// GetBalance reads the current balance, typically inside the same
	// transaction right after an increment.
	GetBalance(ctx context.Context, sellerId uuid.UUID) (float64, error)
}
