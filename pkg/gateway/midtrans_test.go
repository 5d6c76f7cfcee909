package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(fn refundFunc) *midtransGateway {
	return &midtransGateway{
		refundTransaction: fn,
		maxRetries:        3,
		initialInterval:   time.Millisecond,
	}
}

func TestRefundRetriesServerErrorsUpToCap(t *testing.T) {
	calls := 0
	gw := newTestGateway(func(orderId string, req *coreapi.RefundReq) (*coreapi.RefundResponse, *midtrans.Error) {
		calls++
		return nil, &midtrans.Error{Message: "midtrans unavailable", StatusCode: 502}
	})

	result, err := gw.Refund(context.Background(), "ORD-1", "rr-1", 100, "defective item")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 3, calls)
}

func TestRefundRecoversAfterTransientError(t *testing.T) {
	calls := 0
	gw := newTestGateway(func(orderId string, req *coreapi.RefundReq) (*coreapi.RefundResponse, *midtrans.Error) {
		calls++
		if calls == 1 {
			return nil, &midtrans.Error{Message: "gateway timeout", StatusCode: 504}
		}
		return &coreapi.RefundResponse{
			RefundKey:     req.RefundKey,
			TransactionID: "txn-1",
			StatusCode:    "200",
			StatusMessage: "Success",
		}, nil
	})

	result, err := gw.Refund(context.Background(), "ORD-1", "rr-1", 100, "defective item")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "rr-1", result.RefundId)
	assert.Equal(t, "txn-1", result.TransactionId)
}

func TestRefundDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	gw := newTestGateway(func(orderId string, req *coreapi.RefundReq) (*coreapi.RefundResponse, *midtrans.Error) {
		calls++
		return nil, &midtrans.Error{Message: "refund amount exceeds the transaction", StatusCode: 412}
	})

	result, err := gw.Refund(context.Background(), "ORD-1", "rr-1", 100, "defective item")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "refund amount exceeds")
}

func TestRefundPassesIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotOrder string
	gw := newTestGateway(func(orderId string, req *coreapi.RefundReq) (*coreapi.RefundResponse, *midtrans.Error) {
		gotOrder = orderId
		gotKey = req.RefundKey
		return &coreapi.RefundResponse{RefundKey: req.RefundKey}, nil
	})

	_, err := gw.Refund(context.Background(), "ORD-42", "rr-abc", 250, "changed mind")

	require.NoError(t, err)
	assert.Equal(t, "ORD-42", gotOrder)
	assert.Equal(t, "rr-abc", gotKey)
}
