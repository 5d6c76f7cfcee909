package earnings

import (
	"context"
	"errors"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// CommissionRate is the platform cut applied when settling returnable items
// after their window lapses. It is intentionally a single flat policy input,
// separate from any category-level commission used at listing time.
const CommissionRate = 0.08

// ErrAlreadySettled means the in-transaction guard found the item no longer
// ACTIVE/uncredited: another writer (a racing sweep, a customer return, an
// admin override) got there first. Callers treat it as a skip, not a failure.
var ErrAlreadySettled = errors.New("order item no longer eligible for settlement")

// Amounts is the commission breakdown for one order item.
type Amounts struct {
	Gross      float64
	Commission float64
	Net        float64
}

// ComputeEarnings derives the settlement amounts for one line item.
func ComputeEarnings(price float64, quantity int, rate float64) Amounts {
	gross := price * float64(quantity)
	commission := gross * rate
	return Amounts{
		Gross:      gross,
		Commission: commission,
		Net:        gross - commission,
	}
}

// SettleResult reports one successful settlement.
type SettleResult struct {
	ItemId      uuid.UUID
	SellerId    uuid.UUID
	GrossAmount float64
	Commission  float64
	NetAmount   float64
	NewBalance  float64
}

// Engine settles a single eligible order item: item transition, ledger entry
// and balance credit committed as one transaction.
type Engine struct {
	logger logger.ILogger
	rate   float64
}

func NewEngine(log logger.ILogger) *Engine {
	return &Engine{
		logger: log,
		rate:   CommissionRate,
	}
}

// Settle credits the owning seller for one item whose return window expired.
// The caller has already filtered for eligibility; the decisive check is the
// conditional update inside the transaction. On any failure the transaction
// rolls back and the item stays ACTIVE and uncredited for the next sweep.
func (e *Engine) Settle(ctx context.Context, uow unitofwork.UnitOfWork, item *entity.OrderItem, now time.Time) (*SettleResult, error) {
	amounts := ComputeEarnings(item.Price, item.Quantity, e.rate)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	rows, err := uow.OrderItemRepository().SettleIfActive(ctx, item.Id, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadySettled
	}

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

	newBalance, err := uow.SellerRepository().GetBalance(ctx, item.SellerId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	e.logger.Info("SETTLEMENT", "Credited seller earnings", map[string]interface{}{
		"orderItemId": item.Id.String(),
		"sellerId":    item.SellerId.String(),
		"gross":       amounts.Gross,
		"commission":  amounts.Commission,
		"net":         amounts.Net,
	})

	return &SettleResult{
		ItemId:      item.Id,
		SellerId:    item.SellerId,
		GrossAmount: amounts.Gross,
		Commission:  amounts.Commission,
		NetAmount:   amounts.Net,
		NewBalance:  newBalance,
	}, nil
}
