package service

import (
	"context"
	"fmt"
	"strings"
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

type IOrderService interface {
	CreateOrder(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error)
	GetAllOrders(ctx context.Context, status string, page, limit int) ([]*dto.OrderResponse, error)
	GetOrder(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error)
	AcceptOrder(ctx context.Context, orderId uuid.UUID, req *dto.AdminOrderDecisionRequest) (*dto.OrderResponse, error)
	RejectOrder(ctx context.Context, orderId uuid.UUID, req *dto.AdminOrderDecisionRequest) (*dto.AdminOrderRejectResponse, error)
}

type orderService struct {
	uowFactory   unitofwork.RepositoryFactory
	gateway      gateway.PaymentGateway
	eventBus     EventBus
	notification IPublisherService
	returnPolicy config.ReturnPolicyConfig
	logger       logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	paymentGateway gateway.PaymentGateway,
	eventBus EventBus,
	notification IPublisherService,
	returnPolicy config.ReturnPolicyConfig,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory:   uowFactory,
		gateway:      paymentGateway,
		eventBus:     eventBus,
		notification: notification,
		returnPolicy: returnPolicy,
		logger:       log,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	productIds := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		productIds = append(productIds, it.ProductId)
	}

	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: productIds})
	if err != nil {
		return nil, err
	}
	productById := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		productById[p.Id] = p
	}

	now := time.Now()
	order := &entity.Order{
		Id:            uuid.New(),
		OrderNumber:   newOrderNumber(now),
		UserId:        userId,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	}

	items := make([]*entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		product, ok := productById[it.ProductId]
		if !ok {
			return nil, serverutils.NewBadRequest("product %s not found", it.ProductId)
		}
		if product.Status != entity.ProductStatusActive {
			return nil, serverutils.NewBadRequest("product %q is no longer available", product.Name)
		}
		if product.Stock < it.Quantity {
			return nil, serverutils.NewBadRequest("insufficient stock for %q", product.Name)
		}

		productId := product.Id
		items = append(items, &entity.OrderItem{
			Id:        uuid.New(),
			OrderId:   order.Id,
			ProductId: &productId,
			SellerId:  product.SellerId,
			// Snapshots survive later product edits or deletion.
			ProductName:        product.Name,
			Quantity:           it.Quantity,
			Price:              product.Price,
			IsReturnable:       product.IsReturnable,
			ReturnWindowStatus: entity.ReturnWindowNotApplicable,
		})
		order.TotalAmount += product.Price * float64(it.Quantity)
	}

	// Online payments are captured at checkout; COD settles on delivery.
	if order.PaymentMethod == entity.PaymentMethodOnline {
		order.PaymentStatus = entity.PaymentStatusSuccessful
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.OrderItemRepository().CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	for _, it := range items {
		product := productById[*it.ProductId]
		product.Stock -= it.Quantity
		if err := uow.ProductRepository().Update(ctx, product); err != nil {
			return nil, err
		}
	}

	if order.PaymentMethod == entity.PaymentMethodOnline {
		txn := &entity.PaymentTransaction{
			Id:            uuid.New(),
			OrderId:       order.Id,
			TransactionId: "pay-" + uuid.New().String(),
			Type:          entity.TransactionTypePayment,
			Amount:        order.TotalAmount,
			Status:        entity.TransactionStatusSuccessful,
		}
		if err := uow.PaymentTransactionRepository().Create(ctx, txn); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	order.Items = items
	return mapOrderToResponse(order), nil
}

func (s *orderService) GetOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, mapOrderToResponse(order))
	}
	return responses, nil
}

func (s *orderService) GetAllOrders(ctx context.Context, status string, page, limit int) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, mapOrderToResponse(order))
	}
	return responses, nil
}

func (s *orderService) GetOrder(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOneWithItems(ctx,
		specification.ByID{ID: orderId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewNotFound("order not found")
	}
	return mapOrderToResponse(order), nil
}

// AcceptOrder confirms a pending order and opens the return window on every
// returnable item, both inside one transaction. The guarded transition makes
// a double-accept (two admins, a retried request) resolve to exactly one
// winner; the loser gets a conflict error and no windows are touched twice.
func (s *orderService) AcceptOrder(ctx context.Context, orderId uuid.UUID, req *dto.AdminOrderDecisionRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewNotFound("order not found")
	}
	if !order.Status.CanTransitionTo(entity.OrderStatusConfirmed) {
		return nil, serverutils.NewBadRequest("order in status %s cannot be accepted", order.Status)
	}

	extra := map[string]interface{}{}
	if req.AdminNotes != "" {
		extra["admin_notes"] = req.AdminNotes
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	rows, err := uow.OrderRepository().TransitionStatus(ctx, order.Id,
		entity.OrderStatusPending, entity.OrderStatusConfirmed, extra)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, serverutils.NewBadRequest("order was modified concurrently, please retry")
	}

	windowStart := time.Now()
	windowEnd := windowStart.Add(s.returnPolicy.WindowDuration)
	if _, err := uow.OrderItemRepository().OpenReturnWindows(ctx, order.Id, windowStart, windowEnd); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeOrderConfirmed, map[string]interface{}{
		"order_id":     order.Id.String(),
		"order_number": order.OrderNumber,
		"window_end":   windowEnd,
	})

	fresh := s.uowFactory.NewUnitOfWork(ctx)
	updated, err := fresh.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: order.Id})
	if err != nil {
		return nil, err
	}
	return mapOrderToResponse(updated), nil
}

// RejectOrder cancels a pending order. The local side effects (status change,
// payment flagged refunded, compensating ledger entry) commit atomically;
// the external gateway call runs after the commit so a slow or failing
// gateway never holds a database transaction open. A gateway failure is
// surfaced to the admin for manual follow-up, not treated as a rejection
// failure.
func (s *orderService) RejectOrder(ctx context.Context, orderId uuid.UUID, req *dto.AdminOrderDecisionRequest) (*dto.AdminOrderRejectResponse, error) {
	if strings.TrimSpace(req.AdminNotes) == "" {
		return nil, serverutils.NewBadRequest("admin_notes is required when rejecting an order")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewNotFound("order not found")
	}
	if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, serverutils.NewBadRequest("order in status %s cannot be rejected", order.Status)
	}

	needsRefund := order.PaymentMethod == entity.PaymentMethodOnline &&
		order.PaymentStatus == entity.PaymentStatusSuccessful

	extra := map[string]interface{}{"admin_notes": req.AdminNotes}
	if needsRefund {
		extra["payment_status"] = string(entity.PaymentStatusRefunded)
	}

	refundTxnId := "refund-" + uuid.New().String()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	rows, err := uow.OrderRepository().TransitionStatus(ctx, order.Id,
		order.Status, entity.OrderStatusCancelled, extra)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, serverutils.NewBadRequest("order was modified concurrently, please retry")
	}

	if needsRefund {
		txn := &entity.PaymentTransaction{
			Id:            uuid.New(),
			OrderId:       order.Id,
			TransactionId: refundTxnId,
			Type:          entity.TransactionTypeRefund,
			Amount:        order.TotalAmount,
			Status:        entity.TransactionStatusRefunded,
			GatewayResponse: datatypes.JSON([]byte(fmt.Sprintf(
				`{"origin":"order_rejection","reason":%q}`, req.AdminNotes))),
		}
		if err := uow.PaymentTransactionRepository().Create(ctx, txn); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	resp := &dto.AdminOrderRejectResponse{
		OrderId:       order.Id,
		Status:        string(entity.OrderStatusCancelled),
		PaymentStatus: string(order.PaymentStatus),
	}
	if needsRefund {
		resp.PaymentStatus = string(entity.PaymentStatusRefunded)
		if _, err := s.gateway.Refund(ctx, order.OrderNumber, refundTxnId, order.TotalAmount,
			"order rejected: "+req.AdminNotes); err != nil {
			s.logger.Error("ORDER", "Gateway refund failed after order rejection", map[string]interface{}{
				"orderId": order.Id.String(),
				"error":   err.Error(),
			})
			resp.GatewayError = err.Error()
		} else {
			resp.RefundIssued = true
		}
	}

	s.publishEvent(ctx, events.TypeOrderCancelled, map[string]interface{}{
		"order_id":      order.Id.String(),
		"order_number":  order.OrderNumber,
		"reason":        req.AdminNotes,
		"refund_issued": resp.RefundIssued,
	})
	s.notifyCustomer(ctx, uow, order, &dto.NotificationMessage{
		Type:        events.TypeOrderCancelled,
		OrderNumber: order.OrderNumber,
		Reason:      req.AdminNotes,
	})

	return resp, nil
}

func (s *orderService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(ctx, events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("ORDER", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *orderService) notifyCustomer(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.Order, msg *dto.NotificationMessage) {
	if s.notification == nil {
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId})
	if err != nil || user == nil {
		s.logger.Warn("ORDER", "Could not resolve customer for notification", map[string]interface{}{
			"orderId": order.Id.String(),
		})
		return
	}
	msg.Email = user.Email
	if err := s.notification.PublishNotification(msg); err != nil {
		s.logger.Warn("ORDER", "Failed to enqueue notification", map[string]interface{}{
			"orderId": order.Id.String(),
			"error":   err.Error(),
		})
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func mapOrderToResponse(order *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		Id:            order.Id,
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		TotalAmount:   order.TotalAmount,
		AdminNotes:    order.AdminNotes,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Id:                 item.Id,
			ProductId:          item.ProductId,
			SellerId:           item.SellerId,
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			Price:              item.Price,
			IsReturnable:       item.IsReturnable,
			ReturnWindowStatus: string(item.ReturnWindowStatus),
			ReturnWindowEnd:    item.ReturnWindowEnd,
			ReturnedAt:         item.ReturnedAt,
		})
	}
	return resp
}
