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

type returnRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewReturnRequestRepository(db *gorm.DB) contract.ReturnRequestRepository {
	return &returnRequestRepositoryImpl{db: db}
}

func (r *returnRequestRepositoryImpl) Create(ctx context.Context, req *entity.ReturnRequest) error {
	mr := &model.ReturnRequest{
		Id:          req.Id,
		OrderItemId: req.OrderItemId,
		OrderId:     req.OrderId,
		UserId:      req.UserId,
		Reason:      req.Reason,
		ProductName: req.ProductName,
		Amount:      req.Amount,
		Status:      string(req.Status),
		AdminNotes:  req.AdminNotes,
		ProcessedAt: req.ProcessedAt,
	}
	return r.db.WithContext(ctx).Create(mr).Error
}

func (r *returnRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReturnRequest, error) {
	var mr model.ReturnRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mr), nil
}

func (r *returnRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error) {
	var mrs []*model.ReturnRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}

	var reqs []*entity.ReturnRequest
	for _, mr := range mrs {
		reqs = append(reqs, r.mapToEntity(mr))
	}
	return reqs, nil
}

// FindAllWithDetails preloads the order item for admin listings.
func (r *returnRequestRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.ReturnRequest, error) {
	var mrs []*model.ReturnRequest
	query := r.db.WithContext(ctx).
		Preload("OrderItem").
		Preload("User")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}

	var reqs []*entity.ReturnRequest
	for _, mr := range mrs {
		req := r.mapToEntity(mr)
		req.ProductName = mr.OrderItem.ProductName
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *returnRequestRepositoryImpl) Update(ctx context.Context, req *entity.ReturnRequest) error {
	return r.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("id = ?", req.Id).
		Updates(map[string]interface{}{
			"status":       string(req.Status),
			"admin_notes":  req.AdminNotes,
			"amount":       req.Amount,
			"processed_at": req.ProcessedAt,
		}).Error
}

func (r *returnRequestRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("id = ? AND processed_at IS NULL", id).
		Update("processed_at", at)
	return result.RowsAffected, result.Error
}

func (r *returnRequestRepositoryImpl) ActiveExistsForItem(ctx context.Context, itemId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("order_item_id = ? AND status <> ?", itemId, string(entity.ReturnStatusRejected)).
		Count(&count).Error
	return count > 0, err
}

func (r *returnRequestRepositoryImpl) mapToEntity(mr *model.ReturnRequest) *entity.ReturnRequest {
	return &entity.ReturnRequest{
		Id:          mr.Id,
		OrderItemId: mr.OrderItemId,
		OrderId:     mr.OrderId,
		UserId:      mr.UserId,
		Reason:      mr.Reason,
		ProductName: mr.ProductName,
		Amount:      mr.Amount,
		Status:      entity.ReturnStatus(mr.Status),
		AdminNotes:  mr.AdminNotes,
		ProcessedAt: mr.ProcessedAt,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}
}
