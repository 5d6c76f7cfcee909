package integration

import (
	"context"
	"testing"
	"time"

	"marketplace-be/internal/config"
	"marketplace-be/internal/dto"
	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"
	"marketplace-be/internal/service"
	"marketplace-be/pkg/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	err     error
	calls   int
	keys    []string
	amounts []float64
}

func (g *stubGateway) Refund(ctx context.Context, orderId, refundKey string, amount float64, reason string) (*gateway.RefundResult, error) {
	g.calls++
	g.keys = append(g.keys, refundKey)
	g.amounts = append(g.amounts, amount)
	if g.err != nil {
		return nil, g.err
	}
	return &gateway.RefundResult{
		RefundId:      refundKey,
		TransactionId: "txn-" + refundKey,
		StatusCode:    "200",
		StatusMessage: "Success",
	}, nil
}

func refundLedgerEntries(t *testing.T, uow unitofwork.UnitOfWork, orderId uuid.UUID) []*entity.PaymentTransaction {
	t.Helper()
	txns, err := uow.PaymentTransactionRepository().FindAll(context.Background(),
		specification.ByOrder{OrderID: orderId})
	require.NoError(t, err)

	var refunds []*entity.PaymentTransaction
	for _, txn := range txns {
		if txn.Type == entity.TransactionTypeRefund {
			refunds = append(refunds, txn)
		}
	}
	return refunds
}

func TestOrderRejectionRefundFlow(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	item, _ := seedExpiredItem(t, factory, 500, 2)

	uow := factory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
	require.NoError(t, err)
	require.NotNil(t, order)

	gw := &stubGateway{}
	svc := service.NewOrderService(factory, gw, nil, nil,
		config.ReturnPolicyConfig{WindowDuration: 24 * time.Hour}, nopLogger{})

	resp, err := svc.RejectOrder(ctx, order.Id, &dto.AdminOrderDecisionRequest{
		AdminNotes: "out of stock at the warehouse",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.OrderStatusCancelled), resp.Status)
	assert.Equal(t, string(entity.PaymentStatusRefunded), resp.PaymentStatus)
	assert.True(t, resp.RefundIssued)
	assert.Empty(t, resp.GatewayError)

	t.Run("order state persisted", func(t *testing.T) {
		got, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: order.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.OrderStatusCancelled, got.Status)
		assert.Equal(t, entity.PaymentStatusRefunded, got.PaymentStatus)
		assert.Equal(t, "out of stock at the warehouse", got.AdminNotes)
	})

	t.Run("exactly one compensating ledger entry", func(t *testing.T) {
		refunds := refundLedgerEntries(t, uow, order.Id)
		require.Len(t, refunds, 1)
		assert.Equal(t, order.TotalAmount, refunds[0].Amount)
		assert.Equal(t, entity.TransactionStatusRefunded, refunds[0].Status)
	})

	t.Run("gateway called once with the full amount", func(t *testing.T) {
		require.Equal(t, 1, gw.calls)
		assert.Equal(t, order.TotalAmount, gw.amounts[0])
	})

	t.Run("second rejection is refused", func(t *testing.T) {
		_, err := svc.RejectOrder(ctx, order.Id, &dto.AdminOrderDecisionRequest{
			AdminNotes: "oops, again",
		})
		var httpErr *serverutils.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, 1, gw.calls, "refused rejection must not reach the gateway")
	})
}

func TestOrderRejectionSurvivesGatewayFailure(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	item, _ := seedExpiredItem(t, factory, 300, 1)

	uow := factory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
	require.NoError(t, err)
	require.NotNil(t, order)

	gw := &stubGateway{err: serverutils.NewBadGateway("midtrans unavailable")}
	svc := service.NewOrderService(factory, gw, nil, nil,
		config.ReturnPolicyConfig{WindowDuration: 24 * time.Hour}, nopLogger{})

	resp, err := svc.RejectOrder(ctx, order.Id, &dto.AdminOrderDecisionRequest{
		AdminNotes: "fraud check failed",
	})
	require.NoError(t, err)

	// The local cancellation committed before the gateway call; the failure
	// is surfaced for manual follow-up rather than rolled back.
	assert.False(t, resp.RefundIssued)
	assert.Contains(t, resp.GatewayError, "midtrans unavailable")

	got, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
	assert.Equal(t, entity.PaymentStatusRefunded, got.PaymentStatus)
	assert.Len(t, refundLedgerEntries(t, uow, order.Id), 1)
}

// seedApprovedReturn attaches an approved, unprocessed return request to a
// freshly seeded order item.
func seedApprovedReturn(t *testing.T, factory unitofwork.RepositoryFactory, price float64, qty int) *entity.ReturnRequest {
	t.Helper()
	ctx := context.Background()

	item, _ := seedExpiredItem(t, factory, price, qty)

	uow := factory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
	require.NoError(t, err)
	require.NotNil(t, order)

	request := &entity.ReturnRequest{
		Id:          uuid.New(),
		OrderItemId: item.Id,
		OrderId:     order.Id,
		UserId:      order.UserId,
		Reason:      "arrived damaged",
		ProductName: item.ProductName,
		Amount:      price * float64(qty),
		Status:      entity.ReturnStatusApproved,
	}
	require.NoError(t, uow.ReturnRequestRepository().Create(ctx, request))
	return request
}

func TestRefundProcessedExactlyOnce(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	request := seedApprovedReturn(t, factory, 200, 1)

	gw := &stubGateway{}
	svc := service.NewRefundService(factory, gw, nil, nil, config.ReturnPolicyConfig{}, nopLogger{})

	resp, err := svc.ProcessRefund(ctx, request.Id, &dto.ProcessRefundRequest{
		RefundAmount: 200,
		RefundNote:   "full refund",
	})
	require.NoError(t, err)
	assert.Equal(t, "rr-"+request.Id.String(), resp.TransactionId)
	assert.Equal(t, 200.0, resp.RefundAmount)

	_, err = svc.ProcessRefund(ctx, request.Id, &dto.ProcessRefundRequest{
		RefundAmount: 200,
	})
	var httpErr *serverutils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Contains(t, httpErr.Message, "already been refunded")

	uow := factory.NewUnitOfWork(ctx)
	assert.Len(t, refundLedgerEntries(t, uow, request.OrderId), 1)
}

func TestMarkProcessedGuard(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	request := seedApprovedReturn(t, factory, 150, 1)
	uow := factory.NewUnitOfWork(ctx)
	now := time.Now()

	rows, err := uow.ReturnRequestRepository().MarkProcessed(ctx, request.Id, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A concurrent refund that lost the race sees zero rows, not a
	// duplicate-key error from the ledger insert.
	rows, err = uow.ReturnRequestRepository().MarkProcessed(ctx, request.Id, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
