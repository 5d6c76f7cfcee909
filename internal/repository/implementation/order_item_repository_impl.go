package implementation

import (
	"context"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/model"
	"marketplace-be/internal/repository/contract"
	"marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderItemRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) contract.OrderItemRepository {
	return &orderItemRepositoryImpl{db: db}
}

func (r *orderItemRepositoryImpl) Create(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Create(mapItemToModel(item)).Error
}

func (r *orderItemRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	var mis []*model.OrderItem
	for _, item := range items {
		mis = append(mis, mapItemToModel(item))
	}
	return r.db.WithContext(ctx).Create(mis).Error
}

func (r *orderItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error) {
	var mi model.OrderItem
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mi).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapItemToEntity(&mi), nil
}

func (r *orderItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	var mis []*model.OrderItem
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mis).Error; err != nil {
		return nil, err
	}

	var items []*entity.OrderItem
	for _, mi := range mis {
		items = append(items, mapItemToEntity(mi))
	}
	return items, nil
}

func (r *orderItemRepositoryImpl) OpenReturnWindows(ctx context.Context, orderId uuid.UUID, start, end time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ? AND is_returnable = ? AND return_window_status = ?",
			orderId, true, string(entity.ReturnWindowNotApplicable)).
		Updates(map[string]interface{}{
			"return_window_status": string(entity.ReturnWindowActive),
			"return_window_start":  start,
			"return_window_end":    end,
			"updated_at":           time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *orderItemRepositoryImpl) SettleIfActive(ctx context.Context, itemId uuid.UUID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ? AND return_window_status = ? AND earnings_credited = ?",
			itemId, string(entity.ReturnWindowActive), false).
		Updates(map[string]interface{}{
			"return_window_status": string(entity.ReturnWindowCompleted),
			"earnings_credited":    true,
			"earnings_credited_at": now,
			"updated_at":           now,
		})
	return res.RowsAffected, res.Error
}

func (r *orderItemRepositoryImpl) MarkReturnedIfActive(ctx context.Context, itemId uuid.UUID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ? AND return_window_status = ?", itemId, string(entity.ReturnWindowActive)).
		Updates(map[string]interface{}{
			"return_window_status": string(entity.ReturnWindowReturned),
			"returned_at":          now,
			"updated_at":           now,
		})
	return res.RowsAffected, res.Error
}

func (r *orderItemRepositoryImpl) UpdateWhereStatus(ctx context.Context, itemId uuid.UUID, expected entity.ReturnWindowStatus, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ? AND return_window_status = ?", itemId, string(expected)).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func mapItemToModel(i *entity.OrderItem) *model.OrderItem {
	return &model.OrderItem{
		Id:                 i.Id,
		OrderId:            i.OrderId,
		ProductId:          i.ProductId,
		SellerId:           i.SellerId,
		ProductName:        i.ProductName,
		Quantity:           i.Quantity,
		Price:              i.Price,
		IsReturnable:       i.IsReturnable,
		ReturnWindowStatus: string(i.ReturnWindowStatus),
		ReturnWindowStart:  i.ReturnWindowStart,
		ReturnWindowEnd:    i.ReturnWindowEnd,
		ReturnedAt:         i.ReturnedAt,
		EarningsCredited:   i.EarningsCredited,
		EarningsCreditedAt: i.EarningsCreditedAt,
	}
}

func mapItemToEntity(mi *model.OrderItem) *entity.OrderItem {
	return &entity.OrderItem{
		Id:                 mi.Id,
		OrderId:            mi.OrderId,
		ProductId:          mi.ProductId,
		SellerId:           mi.SellerId,
		ProductName:        mi.ProductName,
		Quantity:           mi.Quantity,
		Price:              mi.Price,
		IsReturnable:       mi.IsReturnable,
		ReturnWindowStatus: entity.ReturnWindowStatus(mi.ReturnWindowStatus),
		ReturnWindowStart:  mi.ReturnWindowStart,
		ReturnWindowEnd:    mi.ReturnWindowEnd,
		ReturnedAt:         mi.ReturnedAt,
		EarningsCredited:   mi.EarningsCredited,
		EarningsCreditedAt: mi.EarningsCreditedAt,
		CreatedAt:          mi.CreatedAt,
		UpdatedAt:          mi.UpdatedAt,
	}
}
