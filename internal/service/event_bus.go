package service

import (
	"context"

	"marketplace-be/pkg/events"
)

// EventBus is the outbound event sink (NATS JetStream in production).
// Publishing is fire-and-forget from the caller's perspective: domain state
// is already committed by the time an event goes out, so publish failures are
// logged, never propagated.
type EventBus interface {
	Publish(ctx context.Context, event events.Event) error
}
