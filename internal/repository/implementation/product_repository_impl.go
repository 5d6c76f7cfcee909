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

type productRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func (r *productRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	mp := &model.Product{
		Id:           product.Id,
		SellerId:     product.SellerId,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Stock:        product.Stock,
		IsReturnable: product.IsReturnable,
		Status:       string(product.Status),
	}
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *productRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var mp model.Product
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mp), nil
}

func (r *productRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var mps []*model.Product
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mps).Error; err != nil {
		return nil, err
	}

	var products []*entity.Product
	for _, mp := range mps {
		products = append(products, r.mapToEntity(mp))
	}
	return products, nil
}

func (r *productRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]interface{}{
			"name":          product.Name,
			"description":   product.Description,
			"price":         product.Price,
			"stock":         product.Stock,
			"is_returnable": product.IsReturnable,
			"status":        string(product.Status),
		}).Error
}

func (r *productRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepositoryImpl) mapToEntity(mp *model.Product) *entity.Product {
	return &entity.Product{
		Id:           mp.Id,
		SellerId:     mp.SellerId,
		Name:         mp.Name,
		Description:  mp.Description,
		Price:        mp.Price,
		Stock:        mp.Stock,
		IsReturnable: mp.IsReturnable,
		Status:       entity.ProductStatus(mp.Status),
		CreatedAt:    mp.CreatedAt,
		UpdatedAt:    mp.UpdatedAt,
	}
}
