package service

import (
	"context"
	"testing"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/repository/contract"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"
	"marketplace-be/pkg/earnings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type emptyItemRepo struct {
	contract.OrderItemRepository
}

func (emptyItemRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	return nil, nil
}

type emptyUow struct {
	unitofwork.UnitOfWork
}

func (emptyUow) OrderItemRepository() contract.OrderItemRepository { return emptyItemRepo{} }

type emptyFactory struct{}

func (emptyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return emptyUow{} }

func newEmptySweeper(clock func() time.Time) *earnings.Sweeper {
	engine := earnings.NewEngine(nopLogger{})
	return earnings.NewSweeper(emptyFactory{}, engine, nil, nopLogger{}).WithClock(clock)
}

func TestSettlementServiceRunSweepWithoutRedis(t *testing.T) {
	// No Redis client configured: the sweep must still run, lock-free.
	svc := NewSettlementService(newEmptySweeper(time.Now), nil, nopLogger{})

	summary, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
}

func TestSettlementServiceRecentSweepsNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	current := base
	svc := NewSettlementService(newEmptySweeper(func() time.Time { return current }), nil, nopLogger{})

	for i := 0; i < 3; i++ {
		current = base.Add(time.Duration(i) * time.Hour)
		_, err := svc.RunSweep(context.Background())
		require.NoError(t, err)
	}

	got := svc.RecentSweeps()
	require.Len(t, got, 3)
	assert.Equal(t, base.Add(2*time.Hour), got[0].RanAt)
	assert.Equal(t, base.Add(1*time.Hour), got[1].RanAt)
	assert.Equal(t, base, got[2].RanAt)
}
