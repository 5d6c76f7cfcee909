package service

import (
	"context"

	"marketplace-be/internal/dto"
	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISellerService interface {
	GetEarnings(ctx context.Context, userId uuid.UUID) ([]*dto.SellerEarningResponse, error)
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.SellerBalanceResponse, error)
}

type sellerService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSellerService(uowFactory unitofwork.RepositoryFactory) ISellerService {
	return &sellerService{uowFactory: uowFactory}
}

func (s *sellerService) resolveSeller(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.Seller, error) {
	seller, err := uow.SellerRepository().FindOne(ctx, specification.Filter("user_id", userId))
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, serverutils.NewNotFound("no seller profile for this account")
	}
	return seller, nil
}

func (s *sellerService) GetEarnings(ctx context.Context, userId uuid.UUID) ([]*dto.SellerEarningResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	seller, err := s.resolveSeller(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	earnings, err := uow.SellerEarningRepository().FindAll(ctx,
		specification.OwnedBySeller{SellerID: seller.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SellerEarningResponse, 0, len(earnings))
	for _, e := range earnings {
		responses = append(responses, &dto.SellerEarningResponse{
			Id:          e.Id,
			OrderItemId: e.OrderItemId,
			GrossAmount: e.GrossAmount,
			Commission:  e.Commission,
			Amount:      e.Amount,
			Type:        string(e.Type),
			Status:      string(e.Status),
			CreditedAt:  e.CreditedAt,
			CreatedAt:   e.CreatedAt,
		})
	}
	return responses, nil
}

func (s *sellerService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.SellerBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	seller, err := s.resolveSeller(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	earnings, err := uow.SellerEarningRepository().FindAll(ctx,
		specification.OwnedBySeller{SellerID: seller.Id},
	)
	if err != nil {
		return nil, err
	}

	return &dto.SellerBalanceResponse{
		SellerId:       seller.Id,
		StoreName:      seller.StoreName,
		Balance:        seller.Balance,
		PayoutsEnabled: seller.PayoutsEnabled,
		TotalEarnings:  len(earnings),
	}, nil
}
