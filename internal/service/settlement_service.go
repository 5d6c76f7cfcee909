package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"marketplace-be/internal/pkg/logger"
	"marketplace-be/pkg/earnings"
	"marketplace-be/pkg/events"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrSweepInProgress means another sweep holds the distributed lock. The
// caller reports it as a no-op run, not a failure: the engine's transactional
// guards make overlapping sweeps safe anyway, the lock just avoids the
// wasted work.
var ErrSweepInProgress = errors.New("a settlement sweep is already running")

const (
	sweepLockKey = "settlement:sweep:lock"
	sweepLockTTL = 5 * time.Minute
)

type ISettlementService interface {
	RunSweep(ctx context.Context) (*earnings.Summary, error)
	RecentSweeps() []*earnings.Summary
}

type settlementService struct {
	sweeper *earnings.Sweeper
	redis   *redis.Client
	history *gocache.Cache
	logger  logger.ILogger
}

func NewSettlementService(sweeper *earnings.Sweeper, redisClient *redis.Client, log logger.ILogger) ISettlementService {
	return &settlementService{
		sweeper: sweeper,
		redis:   redisClient,
		history: gocache.New(24*time.Hour, 1*time.Hour),
		logger:  log,
	}
}

// RunSweep executes one settlement pass under a best-effort distributed
// lock. If Redis is unreachable the sweep still runs; correctness comes from
// the per-item conditional updates, not the lock.
func (s *settlementService) RunSweep(ctx context.Context) (*earnings.Summary, error) {
	runId := uuid.New().String()

	if s.redis != nil {
		locked, err := s.redis.SetNX(ctx, sweepLockKey, runId, sweepLockTTL).Result()
		if err != nil {
			s.logger.Warn("SETTLEMENT", "Redis unavailable, sweeping without lock", map[string]interface{}{
				"error": err.Error(),
			})
		} else if !locked {
			return nil, ErrSweepInProgress
		} else {
			defer s.redis.Del(context.WithoutCancel(ctx), sweepLockKey)
		}
	}

	summary, err := s.sweeper.Run(ctx)
	if err != nil {
		return nil, err
	}

	s.history.Set("sweep:"+summary.RanAt.Format(time.RFC3339Nano), summary, gocache.DefaultExpiration)
	return summary, nil
}

// RecentSweeps returns the summaries still held in the in-memory history,
// newest first.
func (s *settlementService) RecentSweeps() []*earnings.Summary {
	items := s.history.Items()
	summaries := make([]*earnings.Summary, 0, len(items))
	for _, item := range items {
		if summary, ok := item.Object.(*earnings.Summary); ok {
			summaries = append(summaries, summary)
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].RanAt.After(summaries[j].RanAt)
	})
	if len(summaries) > 20 {
		summaries = summaries[:20]
	}
	return summaries
}

// settlementNotifier forwards settlement results to the event bus after each
// item's transaction has committed.
type settlementNotifier struct {
	eventBus EventBus
	logger   logger.ILogger
}

func NewSettlementNotifier(eventBus EventBus, log logger.ILogger) earnings.Notifier {
	return &settlementNotifier{eventBus: eventBus, logger: log}
}

func (n *settlementNotifier) EarningsCredited(ctx context.Context, res *earnings.SettleResult) {
	if n.eventBus == nil {
		return
	}
	err := n.eventBus.Publish(ctx, events.BaseEvent{
		Type: events.TypeEarningsCredited,
		Data: map[string]interface{}{
			"order_item_id": res.ItemId.String(),
			"seller_id":     res.SellerId.String(),
			"gross_amount":  res.GrossAmount,
			"commission":    res.Commission,
			"net_amount":    res.NetAmount,
			"new_balance":   res.NewBalance,
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		n.logger.Error("SETTLEMENT", "Failed to publish earnings event", map[string]interface{}{
			"orderItemId": res.ItemId.String(),
			"error":       err.Error(),
		})
	}
}
