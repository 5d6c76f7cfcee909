package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RETURN_SUBMITTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes emitted by the order/return workflow.
const (
	TypeOrderConfirmed   = "ORDER_CONFIRMED"
	TypeOrderCancelled   = "ORDER_CANCELLED"
	TypeReturnSubmitted  = "RETURN_SUBMITTED"
	TypeEarningsCredited = "EARNINGS_CREDITED"
	TypeRefundIssued     = "REFUND_ISSUED"
)

// BaseEvent is the generic implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
