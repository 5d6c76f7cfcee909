package unitofwork

import (
	"context"

	"marketplace-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. After Begin,
// every repository accessor is bound to the same database transaction; the
// conditional re-check of state preconditions happens inside that scope.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SellerRepository() contract.SellerRepository
	ProductRepository() contract.ProductRepository
	OrderRepository() contract.OrderRepository
	OrderItemRepository() contract.OrderItemRepository
	ReturnRequestRepository() contract.ReturnRequestRepository
	SellerEarningRepository() contract.SellerEarningRepository
	PaymentTransactionRepository() contract.PaymentTransactionRepository
}
