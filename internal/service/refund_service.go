package service

import (
	"context"
	"encoding/json"
	"time"

	"marketplace-be/internal/config"
	"marketplace-be/internal/dto"
	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"
	"marketplace-be/pkg/events"
	"marketplace-be/pkg/gateway"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IRefundService interface {
	ProcessRefund(ctx context.Context, returnId uuid.UUID, req *dto.ProcessRefundRequest) (*dto.ProcessRefundResponse, error)
	GetOrderTransactions(ctx context.Context, orderId uuid.UUID) ([]*dto.PaymentTransactionResponse, error)
}

type refundService struct {
	uowFactory   unitofwork.RepositoryFactory
	gateway      gateway.PaymentGateway
	eventBus     EventBus
	notification IPublisherService
	returnPolicy config.ReturnPolicyConfig
	logger       logger.ILogger
}

func NewRefundService(
	uowFactory unitofwork.RepositoryFactory,
	paymentGateway gateway.PaymentGateway,
	eventBus EventBus,
	notification IPublisherService,
	returnPolicy config.ReturnPolicyConfig,
	log logger.ILogger,
) IRefundService {
	return &refundService{
		uowFactory:   uowFactory,
		gateway:      paymentGateway,
		eventBus:     eventBus,
		notification: notification,
		returnPolicy: returnPolicy,
		logger:       log,
	}
}

// ProcessRefund moves the money for an approved return. The gateway call
// comes first: if the provider rejects the refund, no local state changes at
// all and the admin can retry with the same return request. Only after the
// gateway confirms does the ledger entry commit, carrying the raw gateway
// response for audit. The return request id doubles as the gateway
// idempotency key, so a retry after a crash between the two steps cannot
// double-refund.
func (s *refundService) ProcessRefund(ctx context.Context, returnId uuid.UUID, req *dto.ProcessRefundRequest) (*dto.ProcessRefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRequestRepository().FindOne(ctx, specification.ByID{ID: returnId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, serverutils.NewNotFound("return request not found")
	}
	if request.Status != entity.ReturnStatusApproved {
		return nil, serverutils.NewBadRequest("refunds can only be processed for approved returns (current status: %s)", request.Status)
	}
	if request.ProcessedAt != nil {
		return nil, serverutils.NewBadRequest("this return has already been refunded")
	}
	if req.RefundAmount > request.Amount {
		return nil, serverutils.NewBadRequest("refund amount %.2f exceeds the returned item value %.2f", req.RefundAmount, request.Amount)
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: request.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewNotFound("order for this return no longer exists")
	}

	refundKey := "rr-" + request.Id.String()
	result, err := s.gateway.Refund(ctx, order.OrderNumber, refundKey, req.RefundAmount, req.RefundNote)
	if err != nil {
		return nil, serverutils.NewBadGateway("payment gateway refund failed: %s", err.Error())
	}

	now := time.Now()
	gatewayPayload, err := json.Marshal(map[string]interface{}{
		"refund_id":              result.RefundId,
		"gateway_transaction_id": result.TransactionId,
		"status_code":            result.StatusCode,
		"status_message":         result.StatusMessage,
		"processing_fee":         s.returnPolicy.ProcessingFee,
		"refund_note":            req.RefundNote,
	})
	if err != nil {
		return nil, err
	}

	returnRequestId := request.Id
	txn := &entity.PaymentTransaction{
		Id:              uuid.New(),
		OrderId:         order.Id,
		ReturnRequestId: &returnRequestId,
		TransactionId:   refundKey,
		Type:            entity.TransactionTypeRefund,
		Amount:          req.RefundAmount,
		Status:          entity.TransactionStatusRefunded,
		GatewayResponse: datatypes.JSON(gatewayPayload),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Claim the request before writing the ledger row: a concurrent call
	// that already stamped processed_at loses here instead of tripping the
	// unique transaction_id index.
	rows, err := uow.ReturnRequestRepository().MarkProcessed(ctx, request.Id, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, serverutils.NewBadRequest("this return has already been refunded")
	}
	if err := uow.PaymentTransactionRepository().Create(ctx, txn); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	request.ProcessedAt = &now

	s.publishEvent(ctx, map[string]interface{}{
		"return_request_id": request.Id.String(),
		"order_id":          order.Id.String(),
		"amount":            req.RefundAmount,
		"refund_id":         result.RefundId,
	})
	s.notifyCustomer(ctx, uow, request.UserId, order.OrderNumber, req.RefundAmount)

	return &dto.ProcessRefundResponse{
		ReturnRequestId: request.Id,
		TransactionId:   txn.TransactionId,
		RefundAmount:    req.RefundAmount,
		GatewayRefundId: result.RefundId,
		ProcessedAt:     now,
	}, nil
}

func (s *refundService) GetOrderTransactions(ctx context.Context, orderId uuid.UUID) ([]*dto.PaymentTransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	txns, err := uow.PaymentTransactionRepository().FindAll(ctx,
		specification.ByOrder{OrderID: orderId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PaymentTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, &dto.PaymentTransactionResponse{
			Id:            txn.Id,
			OrderId:       txn.OrderId,
			TransactionId: txn.TransactionId,
			Type:          string(txn.Type),
			Amount:        txn.Amount,
			Status:        string(txn.Status),
			CreatedAt:     txn.CreatedAt,
		})
	}
	return responses, nil
}

func (s *refundService) publishEvent(ctx context.Context, data map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(ctx, events.BaseEvent{
		Type:       events.TypeRefundIssued,
		Data:       data,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("REFUND", "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *refundService) notifyCustomer(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, orderNumber string, amount float64) {
	if s.notification == nil {
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return
	}
	err = s.notification.PublishNotification(&dto.NotificationMessage{
		Type:        events.TypeRefundIssued,
		Email:       user.Email,
		OrderNumber: orderNumber,
		Amount:      amount,
	})
	if err != nil {
		s.logger.Warn("REFUND", "Failed to enqueue notification", map[string]interface{}{
			"userId": userId.String(),
			"error":  err.Error(),
		})
	}
}
