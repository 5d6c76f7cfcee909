package earnings

import (
	"context"
	"errors"
	"time"

	"marketplace-be/internal/entity"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/repository/specification"
	"marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Settler settles one item. Implemented by Engine; faked in tests.
type Settler interface {
	Settle(ctx context.Context, uow unitofwork.UnitOfWork, item *entity.OrderItem, now time.Time) (*SettleResult, error)
}

// Notifier is invoked after a settlement commits, outside the transaction.
type Notifier interface {
	EarningsCredited(ctx context.Context, res *SettleResult)
}

// ItemResult is one row of a sweep summary.
type ItemResult struct {
	Status      string    `json:"status"` // success | skipped | error
	ItemId      uuid.UUID `json:"itemId"`
	SellerId    uuid.UUID `json:"sellerId,omitempty"`
	GrossAmount float64   `json:"grossAmount,omitempty"`
	Commission  float64   `json:"commission,omitempty"`
	NetAmount   float64   `json:"netAmount,omitempty"`
	NewBalance  float64   `json:"newBalance,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Summary aggregates one sweep invocation.
type Summary struct {
	Processed    int          `json:"processed"`
	SuccessCount int          `json:"successCount"`
	ErrorCount   int          `json:"errorCount"`
	SkippedCount int          `json:"skippedCount"`
	RanAt        time.Time    `json:"ranAt"`
	Results      []ItemResult `json:"results"`
}

// Sweeper finds all expired ACTIVE return windows and settles each item in
// its own transaction. One failing row never blocks the rest, and because the
// selection filters on earnings_credited=false, re-running after a crash is
// always safe.
type Sweeper struct {
	uowFactory unitofwork.RepositoryFactory
	settler    Settler
	notifier   Notifier
	logger     logger.ILogger
	now        func() time.Time
}

func NewSweeper(uowFactory unitofwork.RepositoryFactory, settler Settler, notifier Notifier, log logger.ILogger) *Sweeper {
	return &Sweeper{
		uowFactory: uowFactory,
		settler:    settler,
		notifier:   notifier,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run executes one sweep. The returned error only covers the eligibility
// query itself; per-item failures land in the summary.
func (s *Sweeper) Run(ctx context.Context) (*Summary, error) {
	now := s.now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.OrderItemRepository().FindAll(ctx,
		specification.ExpiredReturnWindows{Now: now},
		specification.OrderBy{Field: "return_window_end", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Processed: len(items),
		RanAt:     now,
		Results:   make([]ItemResult, 0, len(items)),
	}

	for _, item := range items {
		// Each item gets a fresh unit of work so its rollback cannot
		// affect items already committed.
		itemUow := s.uowFactory.NewUnitOfWork(ctx)
		res, err := s.settler.Settle(ctx, itemUow, item, now)

		switch {
		case err == nil:
			summary.SuccessCount++
			summary.Results = append(summary.Results, ItemResult{
				Status:      "success",
				ItemId:      res.ItemId,
				SellerId:    res.SellerId,
				GrossAmount: res.GrossAmount,
				Commission:  res.Commission,
				NetAmount:   res.NetAmount,
				NewBalance:  res.NewBalance,
			})
			if s.notifier != nil {
				s.notifier.EarningsCredited(ctx, res)
			}
		case errors.Is(err, ErrAlreadySettled):
			summary.SkippedCount++
			summary.Results = append(summary.Results, ItemResult{
				Status: "skipped",
				ItemId: item.Id,
			})
		default:
			summary.ErrorCount++
			summary.Results = append(summary.Results, ItemResult{
				Status: "error",
				ItemId: item.Id,
				Error:  err.Error(),
			})
			s.logger.Error("SETTLEMENT", "Failed to settle order item", map[string]interface{}{
				"orderItemId": item.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	s.logger.Info("SETTLEMENT", "Sweep finished", map[string]interface{}{
		"processed": summary.Processed,
		"success":   summary.SuccessCount,
		"errors":    summary.ErrorCount,
		"skipped":   summary.SkippedCount,
	})

	return summary, nil
}
