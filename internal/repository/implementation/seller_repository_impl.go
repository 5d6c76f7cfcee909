package implementation

import (
	"context"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/model"
	"marketplace-be/internal/repository/contract"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sellerRepositoryImpl struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) contract.SellerRepository {
	return &sellerRepositoryImpl{db: db}
}

func (r *sellerRepositoryImpl) Create(ctx context.Context, seller *entity.Seller) error {
	ms := &model.Seller{
		Id:             seller.Id,
		UserId:         seller.UserId,
		StoreName:      seller.StoreName,
		Balance:        seller.Balance,
		PayoutsEnabled: seller.PayoutsEnabled,
	}
	return r.db.WithContext(ctx).Create(ms).Error
}

func (r *sellerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Seller, error) {
	var ms model.Seller
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&ms).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&ms), nil
}

func (r *sellerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Seller, error) {
	var mss []*model.Seller
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mss).Error; err != nil {
		return nil, err
	}

	var sellers []*entity.Seller
	for _, ms := range mss {
		sellers = append(sellers, r.mapToEntity(ms))
	}
	return sellers, nil
}

func (r *sellerRepositoryImpl) Update(ctx context.Context, seller *entity.Seller) error {
	// Balance is deliberately absent here: it only ever moves through
	// IncrementBalance inside a settlement or payout transaction.
	return r.db.WithContext(ctx).Model(&model.Seller{}).
		Where("id = ?", seller.Id).
		Updates(map[string]interface{}{
			"store_name":      seller.StoreName,
			"payouts_enabled": seller.PayoutsEnabled,
		}).Error
}

func (r *sellerRepositoryImpl) IncrementBalance(ctx context.Context, sellerId uuid.UUID, delta float64) error {
	res := r.db.WithContext(ctx).Model(&model.Seller{}).
		Where("id = ?", sellerId).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sellerRepositoryImpl) GetBalance(ctx context.Context, sellerId uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).Model(&model.Seller{}).
		Where("id = ?", sellerId).
		Pluck("balance", &balance).Error
	return balance, err
}

func (r *sellerRepositoryImpl) mapToEntity(ms *model.Seller) *entity.Seller {
	return &entity.Seller{
		Id:             ms.Id,
		UserId:         ms.UserId,
		StoreName:      ms.StoreName,
		Balance:        ms.Balance,
		PayoutsEnabled: ms.PayoutsEnabled,
		CreatedAt:      ms.CreatedAt,
		UpdatedAt:      ms.UpdatedAt,
	}
}
