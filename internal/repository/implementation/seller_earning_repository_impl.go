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

type sellerEarningRepositoryImpl struct {
	db *gorm.DB
}

func NewSellerEarningRepository(db *gorm.DB) contract.SellerEarningRepository {
	return &sellerEarningRepositoryImpl{db: db}
}

func (r *sellerEarningRepositoryImpl) Create(ctx context.Context, earning *entity.SellerEarning) error {
	me := &model.SellerEarning{
		Id:                earning.Id,
		SellerId:          earning.SellerId,
		OrderItemId:       earning.OrderItemId,
		GrossAmount:       earning.GrossAmount,
		Commission:        earning.Commission,
		Amount:            earning.Amount,
		Type:              string(earning.Type),
		Status:            string(earning.Status),
		CreditedToBalance: earning.CreditedToBalance,
		CreditedAt:        earning.CreditedAt,
	}
	return r.db.WithContext(ctx).Create(me).Error
}

func (r *sellerEarningRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SellerEarning, error) {
	var me model.SellerEarning
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&me).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&me), nil
}

func (r *sellerEarningRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SellerEarning, error) {
	var mes []*model.SellerEarning
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mes).Error; err != nil {
		return nil, err
	}

	var earnings []*entity.SellerEarning
	for _, me := range mes {
		earnings = append(earnings, r.mapToEntity(me))
	}
	return earnings, nil
}

func (r *sellerEarningRepositoryImpl) CountCreditedForItem(ctx context.Context, itemId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SellerEarning{}).
		Where("order_item_id = ? AND credited_to_balance = ?", itemId, true).
		Count(&count).Error
	return count, err
}

func (r *sellerEarningRepositoryImpl) mapToEntity(me *model.SellerEarning) *entity.SellerEarning {
	return &entity.SellerEarning{
		Id:                me.Id,
		SellerId:          me.SellerId,
		OrderItemId:       me.OrderItemId,
		GrossAmount:       me.GrossAmount,
		Commission:        me.Commission,
		Amount:            me.Amount,
		Type:              entity.EarningType(me.Type),
		Status:            entity.EarningStatus(me.Status),
		CreditedToBalance: me.CreditedToBalance,
		CreditedAt:        me.CreditedAt,
		CreatedAt:         me.CreatedAt,
	}
}
