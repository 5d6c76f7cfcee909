package implementation

import (
	"context"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/model"
	"marketplace-be/internal/repository/contract"
	"marketplace-be/internal/repository/specification"

	"gorm.io/gorm"
)

type paymentTransactionRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) contract.PaymentTransactionRepository {
	return &paymentTransactionRepositoryImpl{db: db}
}

func (r *paymentTransactionRepositoryImpl) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	mt := &model.PaymentTransaction{
		Id:              txn.Id,
		OrderId:         txn.OrderId,
		ReturnRequestId: txn.ReturnRequestId,
		TransactionId:   txn.TransactionId,
		Type:            string(txn.Type),
		Amount:          txn.Amount,
		Status:          string(txn.Status),
		GatewayResponse: txn.GatewayResponse,
	}
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *paymentTransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	var mt model.PaymentTransaction
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mt), nil
}

func (r *paymentTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var mts []*model.PaymentTransaction
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mts).Error; err != nil {
		return nil, err
	}

	var txns []*entity.PaymentTransaction
	for _, mt := range mts {
		txns = append(txns, r.mapToEntity(mt))
	}
	return txns, nil
}

func (r *paymentTransactionRepositoryImpl) mapToEntity(mt *model.PaymentTransaction) *entity.PaymentTransaction {
	return &entity.PaymentTransaction{
		Id:              mt.Id,
		OrderId:         mt.OrderId,
		ReturnRequestId: mt.ReturnRequestId,
		TransactionId:   mt.TransactionId,
		Type:            entity.TransactionType(mt.Type),
		Amount:          mt.Amount,
		Status:          entity.TransactionStatus(mt.Status),
		GatewayResponse: mt.GatewayResponse,
		CreatedAt:       mt.CreatedAt,
		UpdatedAt:       mt.UpdatedAt,
	}
}
