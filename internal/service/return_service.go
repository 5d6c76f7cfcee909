package service

import (
	"context"
	"strings"
	"time"

	"marketplace-be/internal/dto"
	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"
	"marketplace-be/pkg/earnings"
	"marketplace-be/pkg/events"

	"github.com/google/uuid"
)

type IReturnService interface {
	SubmitReturn(ctx context.Context, userId uuid.UUID, req *dto.SubmitReturnRequest) (*dto.SubmitReturnResponse, error)
	GetMyReturns(ctx context.Context, userId uuid.UUID) ([]*dto.ReturnRequestResponse, error)
	GetAllReturns(ctx context.Context, status string) ([]*dto.ReturnRequestResponse, error)
	DecideReturn(ctx context.Context, returnId uuid.UUID, req *dto.AdminReturnDecisionRequest) (*dto.ReturnRequestResponse, error)
	OverrideItemStatus(ctx context.Context, itemId uuid.UUID, req *dto.AdminReturnStatusOverrideRequest) (*dto.AdminReturnStatusOverrideResponse, error)
}

type returnService struct {
	uowFactory   unitofwork.RepositoryFactory
	eventBus     EventBus
	notification IPublisherService
	logger       logger.ILogger
	now          func() time.Time
}

func NewReturnService(
	uowFactory unitofwork.RepositoryFactory,
	eventBus EventBus,
	notification IPublisherService,
	log logger.ILogger,
) IReturnService {
	return &returnService{
		uowFactory:   uowFactory,
		eventBus:     eventBus,
		notification: notification,
		logger:       log,
		now:          time.Now,
	}
}

// SubmitReturn flips one order item from ACTIVE to RETURNED and opens a
// PENDING return request, atomically. The conditional item update is the
// race arbiter against the settlement sweep: whichever transaction lands
// first wins, the other sees zero rows and backs off. An item that reaches
// RETURNED here can never be swept into seller earnings.
func (s *returnService) SubmitReturn(ctx context.Context, userId uuid.UUID, req *dto.SubmitReturnRequest) (*dto.SubmitReturnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	order, err := uow.OrderRepository().FindOneWithItems(ctx,
		specification.ByID{ID: req.OrderId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewNotFound("order not found")
	}

	item := pickReturnTarget(order, req)
	if item == nil {
		return nil, serverutils.NewBadRequest("order has no item eligible for return")
	}
	if !item.IsReturnable {
		return nil, serverutils.NewBadRequest("item %q is not returnable", item.ProductName)
	}
	switch {
	case item.ReturnWindowStatus == entity.ReturnWindowReturned:
		return nil, serverutils.NewBadRequest("item %q has already been returned", item.ProductName)
	case item.ReturnWindowStatus == entity.ReturnWindowCompleted:
		return nil, serverutils.NewBadRequest("the return window for %q has closed", item.ProductName)
	case !item.WindowOpen(now):
		return nil, serverutils.NewBadRequest("the return window for %q is not open", item.ProductName)
	}

	exists, err := uow.ReturnRequestRepository().ActiveExistsForItem(ctx, item.Id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, serverutils.NewBadRequest("a return request for %q is already in progress", item.ProductName)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	rows, err := uow.OrderItemRepository().MarkReturnedIfActive(ctx, item.Id, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race against the sweep (or another request).
		return nil, serverutils.NewBadRequest("the return window for %q just closed", item.ProductName)
	}

	request := &entity.ReturnRequest{
		Id:          uuid.New(),
		OrderItemId: item.Id,
		OrderId:     order.Id,
		UserId:      userId,
		Reason:      req.Reason,
		ProductName: item.ProductName,
		Amount:      item.Price * float64(item.Quantity),
		Status:      entity.ReturnStatusPending,
	}
	if err := uow.ReturnRequestRepository().Create(ctx, request); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeReturnSubmitted, map[string]interface{}{
		"return_request_id": request.Id.String(),
		"order_id":          order.Id.String(),
		"order_item_id":     item.Id.String(),
		"amount":            request.Amount,
	})
	s.notifyCustomer(ctx, uow, userId, &dto.NotificationMessage{
		Type:        events.TypeReturnSubmitted,
		OrderNumber: order.OrderNumber,
		ProductName: item.ProductName,
	})

	return &dto.SubmitReturnResponse{
		ReturnRequestId: request.Id,
		OrderItemId:     item.Id,
		Status:          string(request.Status),
	}, nil
}

func (s *returnService) GetMyReturns(ctx context.Context, userId uuid.UUID) ([]*dto.ReturnRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := uow.ReturnRequestRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return mapReturnRequests(requests), nil
}

func (s *returnService) GetAllReturns(ctx context.Context, status string) ([]*dto.ReturnRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	requests, err := uow.ReturnRequestRepository().FindAllWithDetails(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return mapReturnRequests(requests), nil
}

// DecideReturn approves or rejects a pending request. Approval does not move
// money; the refund sub-flow does that in a separate, explicit step. A
// rejected request is stamped processed immediately.
func (s *returnService) DecideReturn(ctx context.Context, returnId uuid.UUID, req *dto.AdminReturnDecisionRequest) (*dto.ReturnRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.ReturnRequestRepository().FindOne(ctx, specification.ByID{ID: returnId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, serverutils.NewNotFound("return request not found")
	}
	if request.Status != entity.ReturnStatusPending {
		return nil, serverutils.NewBadRequest("return request has already been %s", strings.ToLower(string(request.Status)))
	}

	request.Status = entity.ReturnStatus(req.Status)
	request.AdminNotes = req.AdminNotes
	if request.Status == entity.ReturnStatusRejected {
		now := s.now()
		request.ProcessedAt = &now
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return mapReturnRequest(request), nil
}

// OverrideItemStatus is the administrative escape hatch into the item state
// machine. The target status must be a member of the closed enum, and the
// write is guarded on the status the admin was looking at, so a concurrent
// sweep or return cannot be silently overwritten. Optionally credits the
// seller through the same ledger path the sweep uses.
func (s *returnService) OverrideItemStatus(ctx context.Context, itemId uuid.UUID, req *dto.AdminReturnStatusOverrideRequest) (*dto.AdminReturnStatusOverrideResponse, error) {
	target, err := entity.ParseReturnWindowStatus(req.ReturnWindowStatus)
	if err != nil {
		return nil, serverutils.NewBadRequest("%s", err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	item, err := uow.OrderItemRepository().FindOne(ctx, specification.ByID{ID: itemId})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, serverutils.NewNotFound("order item not found")
	}

	updates := map[string]interface{}{
		"return_window_status": string(target),
	}
	if req.UpdateReturnWindow {
		days := req.ReturnWindowDays
		if days == 0 {
			days = 1
		}
		end := now.Add(time.Duration(days) * 24 * time.Hour)
		updates["return_window_start"] = now
		updates["return_window_end"] = end
	}

	creditEarnings := req.SetEarningsCredited != nil && *req.SetEarningsCredited && !item.EarningsCredited
	if creditEarnings {
		updates["earnings_credited"] = true
		updates["earnings_credited_at"] = now
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	rows, err := uow.OrderItemRepository().UpdateWhereStatus(ctx, item.Id, item.ReturnWindowStatus, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, serverutils.NewBadRequest("order item was modified concurrently, please retry")
	}

	if creditEarnings {
		amounts := earnings.ComputeEarnings(item.Price, item.Quantity, earnings.CommissionRate)
		earning := &entity.SellerEarning{
			Id:                uuid.New(),
			SellerId:          item.SellerId,
			OrderItemId:       item.Id,
			GrossAmount:       amounts.Gross,
			Commission:        amounts.Commission,
			Amount:            amounts.Net,
			Type:              entity.EarningTypePostReturnWindow,
			Status:            entity.EarningStatusCompleted,
			CreditedToBalance: true,
			CreditedAt:        &now,
		}
		if err := uow.SellerEarningRepository().Create(ctx, earning); err != nil {
			return nil, err
		}
		if err := uow.SellerRepository().IncrementBalance(ctx, item.SellerId, amounts.Net); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("RETURN", "Admin override applied to order item", map[string]interface{}{
		"orderItemId":      itemId.String(),
		"fromStatus":       string(item.ReturnWindowStatus),
		"toStatus":         string(target),
		"earningsCredited": creditEarnings,
		"notes":            req.Notes,
	})

	return &dto.AdminReturnStatusOverrideResponse{
		OrderItemId:        itemId,
		ReturnWindowStatus: string(target),
		EarningsCredited:   item.EarningsCredited || creditEarnings,
		Applied:            true,
	}, nil
}

// pickReturnTarget resolves which item of the order the return concerns:
// by product name when the customer names one, otherwise the first item
// with an open window.
func pickReturnTarget(order *entity.Order, req *dto.SubmitReturnRequest) *entity.OrderItem {
	if req.ProductName != "" {
		for _, item := range order.Items {
			if item.ProductName == req.ProductName {
				return item
			}
		}
		return nil
	}
	for _, item := range order.Items {
		if item.ReturnWindowStatus == entity.ReturnWindowActive {
			return item
		}
	}
	if len(order.Items) > 0 {
		return order.Items[0]
	}
	return nil
}

func (s *returnService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(ctx, events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Error("RETURN", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *returnService) notifyCustomer(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, msg *dto.NotificationMessage) {
	if s.notification == nil {
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return
	}
	msg.Email = user.Email
	if err := s.notification.PublishNotification(msg); err != nil {
		s.logger.Warn("RETURN", "Failed to enqueue notification", map[string]interface{}{
			"userId": userId.String(),
			"error":  err.Error(),
		})
	}
}

func mapReturnRequest(r *entity.ReturnRequest) *dto.ReturnRequestResponse {
	return &dto.ReturnRequestResponse{
		Id:          r.Id,
		OrderId:     r.OrderId,
		OrderItemId: r.OrderItemId,
		ProductName: r.ProductName,
		Reason:      r.Reason,
		Amount:      r.Amount,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func mapReturnRequests(requests []*entity.ReturnRequest) []*dto.ReturnRequestResponse {
	responses := make([]*dto.ReturnRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapReturnRequest(r))
	}
	return responses
}
