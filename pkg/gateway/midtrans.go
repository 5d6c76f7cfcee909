package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// RefundResult captures the gateway's confirmation of a monetary refund.
type RefundResult struct {
	RefundId      string
	TransactionId string
	StatusCode    string
	StatusMessage string
}

// PaymentGateway abstracts the external payment provider so services and
// tests do not depend on the midtrans client directly.
type PaymentGateway interface {
	// Refund executes a monetary refund for a previously settled payment.
	// refundKey is the idempotency key; retrying with the same key is safe.
	Refund(ctx context.Context, orderId, refundKey string, amount float64, reason string) (*RefundResult, error)
}

// refundFunc matches coreapi.Client.RefundTransaction; tests substitute it.
type refundFunc func(orderId string, req *coreapi.RefundReq) (*coreapi.RefundResponse, *midtrans.Error)

type midtransGateway struct {
	refundTransaction refundFunc
	maxRetries        uint
	initialInterval   time.Duration
}

// NewMidtransGateway builds the production gateway. Calls are bounded by an
// HTTP timeout and retried with exponential backoff a fixed number of times;
// exhaustion surfaces the gateway error without touching local state.
func NewMidtransGateway(serverKey string, production bool, timeout time.Duration) PaymentGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	midtrans.DefaultGoHttpClient = &http.Client{Timeout: timeout}

	var c coreapi.Client
	c.New(serverKey, env)

	return &midtransGateway{
		refundTransaction: c.RefundTransaction,
		maxRetries:        3,
		initialInterval:   500 * time.Millisecond,
	}
}

func (g *midtransGateway) Refund(ctx context.Context, orderId, refundKey string, amount float64, reason string) (*RefundResult, error) {
	req := &coreapi.RefundReq{
		RefundKey: refundKey,
		Amount:    int64(amount),
		Reason:    reason,
	}

	operation := func() (*RefundResult, error) {
		resp, midErr := g.refundTransaction(orderId, req)
		if midErr != nil {
			// Client-side rejections will not heal on retry.
			if midErr.StatusCode >= 400 && midErr.StatusCode < 500 {
				return nil, backoff.Permanent(midErr)
			}
			return nil, midErr
		}
		return &RefundResult{
			RefundId:      resp.RefundKey,
			TransactionId: resp.TransactionID,
			StatusCode:    resp.StatusCode,
			StatusMessage: resp.StatusMessage,
		}, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.initialInterval
	bo.Multiplier = 2

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(g.maxRetries),
	)
}
