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

type orderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	mo := &model.Order{
		Id:            order.Id,
		OrderNumber:   order.OrderNumber,
		UserId:        order.UserId,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		TotalAmount:   order.TotalAmount,
		AdminNotes:    order.AdminNotes,
	}
	return r.db.WithContext(ctx).Create(mo).Error
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var mo model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mo), nil
}

// FindOneWithItems preloads the order's line items.
func (r *orderRepositoryImpl) FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var mo model.Order
	query := r.db.WithContext(ctx).Preload("Items")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	order := r.mapToEntity(&mo)
	for i := range mo.Items {
		order.Items = append(order.Items, mapItemToEntity(&mo.Items[i]))
	}
	return order, nil
}

func (r *orderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var mos []*model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mos).Error; err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, mo := range mos {
		orders = append(orders, r.mapToEntity(mo))
	}
	return orders, nil
}

func (r *orderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.Id).
		Updates(map[string]interface{}{
			"status":         string(order.Status),
			"payment_status": string(order.PaymentStatus),
			"admin_notes":    order.AdminNotes,
		}).Error
}

func (r *orderRepositoryImpl) TransitionStatus(ctx context.Context, orderId uuid.UUID, from, to entity.OrderStatus, extra map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderId, string(from)).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *orderRepositoryImpl) mapToEntity(mo *model.Order) *entity.Order {
	return &entity.Order{
		Id:            mo.Id,
		OrderNumber:   mo.OrderNumber,
		UserId:        mo.UserId,
		Status:        entity.OrderStatus(mo.Status),
		PaymentStatus: entity.PaymentStatus(mo.PaymentStatus),
		PaymentMethod: entity.PaymentMethod(mo.PaymentMethod),
		TotalAmount:   mo.TotalAmount,
		AdminNotes:    mo.AdminNotes,
		CreatedAt:     mo.CreatedAt,
		UpdatedAt:     mo.UpdatedAt,
	}
}
