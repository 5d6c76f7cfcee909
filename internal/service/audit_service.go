package service

import (
	"context"

	"marketplace-be/internal/pkg/logger"
	"marketplace-be/pkg/events"
	pkgNats "marketplace-be/pkg/nats"
)

// AuditService consumes every domain event from the bus and writes it to the
// structured log, giving the financial workflow a durable audit trail that
// is independent of the services emitting the events.
type AuditService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(sub *pkgNats.Subscriber, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *AuditService) Start() {
	err := s.subscriber.Subscribe("market.>", "audit-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("AUDIT", "Failed to start audit subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.logger.Info("AUDIT", "Audit trail listening to market.>", nil)
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"occurredAt": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	s.logger.Info("AUDIT", event.EventType(), details)
	return nil
}
