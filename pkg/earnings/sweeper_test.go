package earnings

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/contract"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeOrderItemRepo struct {
	contract.OrderItemRepository
	items []*entity.OrderItem
	err   error
}

func (r *fakeOrderItemRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	return r.items, r.err
}

type fakeUow struct {
	unitofwork.UnitOfWork
	itemRepo *fakeOrderItemRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) OrderItemRepository() contract.OrderItemRepository {
	return u.itemRepo
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// settleFunc lets each test script the per-item outcome.
type settleFunc func(item *entity.OrderItem) (*SettleResult, error)

type fakeSettler struct {
	fn    settleFunc
	calls int
}

func (s *fakeSettler) Settle(ctx context.Context, uow unitofwork.UnitOfWork, item *entity.OrderItem, now time.Time) (*SettleResult, error) {
	s.calls++
	return s.fn(item)
}

type recordingNotifier struct {
	credited []*SettleResult
}

func (n *recordingNotifier) EarningsCredited(ctx context.Context, res *SettleResult) {
	n.credited = append(n.credited, res)
}

func expiredItem(sellerId uuid.UUID, price float64, qty int) *entity.OrderItem {
	end := time.Now().Add(-1 * time.Hour)
	return &entity.OrderItem{
		Id:                 uuid.New(),
		SellerId:           sellerId,
		Price:              price,
		Quantity:           qty,
		IsReturnable:       true,
		ReturnWindowStatus: entity.ReturnWindowActive,
		ReturnWindowEnd:    &end,
	}
}

func newTestSweeper(items []*entity.OrderItem, settler Settler, notifier Notifier) *Sweeper {
	factory := &fakeFactory{uow: &fakeUow{itemRepo: &fakeOrderItemRepo{items: items}}}
	return NewSweeper(factory, settler, notifier, nopLogger{})
}

func TestSweeperRunSettlesAllEligibleItems(t *testing.T) {
	sellerId := uuid.New()
	items := []*entity.OrderItem{
		expiredItem(sellerId, 500, 2),
		expiredItem(sellerId, 100, 1),
	}

	settler := &fakeSettler{fn: func(item *entity.OrderItem) (*SettleResult, error) {
		amounts := ComputeEarnings(item.Price, item.Quantity, CommissionRate)
		return &SettleResult{
			ItemId:      item.Id,
			SellerId:    item.SellerId,
			GrossAmount: amounts.Gross,
			Commission:  amounts.Commission,
			NetAmount:   amounts.Net,
		}, nil
	}}
	notifier := &recordingNotifier{}

	summary, err := newTestSweeper(items, settler, notifier).Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Equal(t, 0, summary.SkippedCount)
	assert.Equal(t, 2, settler.calls)
	assert.Len(t, notifier.credited, 2)

	assert.Equal(t, "success", summary.Results[0].Status)
	assert.Equal(t, 1000.0, summary.Results[0].GrossAmount)
	assert.Equal(t, 80.0, summary.Results[0].Commission)
	assert.Equal(t, 920.0, summary.Results[0].NetAmount)
}

func TestSweeperRunIsolatesFailures(t *testing.T) {
	sellerId := uuid.New()
	good := expiredItem(sellerId, 200, 1)
	bad := expiredItem(sellerId, 300, 1)
	raced := expiredItem(sellerId, 400, 1)
	items := []*entity.OrderItem{good, bad, raced}

	settler := &fakeSettler{fn: func(item *entity.OrderItem) (*SettleResult, error) {
		switch item.Id {
		case bad.Id:
			return nil, errors.New("balance update failed")
		case raced.Id:
			return nil, ErrAlreadySettled
		}
		return &SettleResult{ItemId: item.Id, SellerId: item.SellerId}, nil
	}}
	notifier := &recordingNotifier{}

	summary, err := newTestSweeper(items, settler, notifier).Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, 1, summary.SkippedCount)

	// Only the committed settlement triggers a notification.
	assert.Len(t, notifier.credited, 1)
	assert.Equal(t, good.Id, notifier.credited[0].ItemId)

	byItem := map[uuid.UUID]ItemResult{}
	for _, r := range summary.Results {
		byItem[r.ItemId] = r
	}
	assert.Equal(t, "success", byItem[good.Id].Status)
	assert.Equal(t, "error", byItem[bad.Id].Status)
	assert.Contains(t, byItem[bad.Id].Error, "balance update failed")
	assert.Equal(t, "skipped", byItem[raced.Id].Status)
}

func TestSweeperRunEmpty(t *testing.T) {
	settler := &fakeSettler{fn: func(item *entity.OrderItem) (*SettleResult, error) {
		t.Fatal("settler must not be called with no eligible items")
		return nil, nil
	}}

	summary, err := newTestSweeper(nil, settler, nil).Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Empty(t, summary.Results)
	assert.Equal(t, 0, settler.calls)
}

func TestSweeperRunQueryFailure(t *testing.T) {
	factory := &fakeFactory{uow: &fakeUow{itemRepo: &fakeOrderItemRepo{err: errors.New("db down")}}}
	sweeper := NewSweeper(factory, &fakeSettler{fn: nil}, nil, nopLogger{})

	summary, err := sweeper.Run(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestSweeperWithClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sweeper := newTestSweeper(nil, &fakeSettler{fn: nil}, nil).WithClock(func() time.Time { return fixed })

	summary, err := sweeper.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, fixed, summary.RanAt)
}
