package entity

import (
	"testing"
	"time"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, false},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"confirmed to shipped", OrderStatusConfirmed, OrderStatusShipped, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"confirmed to pending", OrderStatusConfirmed, OrderStatusPending, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestReturnWindowStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from ReturnWindowStatus
		to   ReturnWindowStatus
		want bool
	}{
		{"active to completed", ReturnWindowActive, ReturnWindowCompleted, true},
		{"active to returned", ReturnWindowActive, ReturnWindowReturned, true},
		{"active to not applicable", ReturnWindowActive, ReturnWindowNotApplicable, false},
		{"completed is terminal", ReturnWindowCompleted, ReturnWindowActive, false},
		{"returned is terminal", ReturnWindowReturned, ReturnWindowActive, false},
		{"not applicable reactivated by admin", ReturnWindowNotApplicable, ReturnWindowActive, true},
		{"not applicable to completed", ReturnWindowNotApplicable, ReturnWindowCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParseReturnWindowStatus(t *testing.T) {
	for _, valid := range []string{"NOT_APPLICABLE", "ACTIVE", "COMPLETED", "RETURNED"} {
		got, err := ParseReturnWindowStatus(valid)
		if err != nil {
			t.Errorf("ParseReturnWindowStatus(%q) unexpected error: %v", valid, err)
		}
		if string(got) != valid {
			t.Errorf("ParseReturnWindowStatus(%q) = %q", valid, got)
		}
	}

	for _, invalid := range []string{"", "active", "EXPIRED", "DONE", "Active "} {
		if _, err := ParseReturnWindowStatus(invalid); err == nil {
			t.Errorf("ParseReturnWindowStatus(%q) expected error, got none", invalid)
		}
	}
}

func TestOrderItemWindowChecks(t *testing.T) {
	now := time.Now()
	past := now.Add(-1 * time.Hour)
	future := now.Add(1 * time.Hour)

	tests := []struct {
		name        string
		item        OrderItem
		wantOpen    bool
		wantExpired bool
	}{
		{
			name: "active window still open",
			item: OrderItem{
				ReturnWindowStatus: ReturnWindowActive,
				ReturnWindowEnd:    &future,
			},
			wantOpen:    true,
			wantExpired: false,
		},
		{
			name: "active window lapsed",
			item: OrderItem{
				ReturnWindowStatus: ReturnWindowActive,
				ReturnWindowEnd:    &past,
			},
			wantOpen:    false,
			wantExpired: true,
		},
		{
			name: "lapsed but already credited",
			item: OrderItem{
				ReturnWindowStatus: ReturnWindowActive,
				ReturnWindowEnd:    &past,
				EarningsCredited:   true,
			},
			wantOpen:    false,
			wantExpired: false,
		},
		{
			name: "returned item is never open nor expired",
			item: OrderItem{
				ReturnWindowStatus: ReturnWindowReturned,
				ReturnWindowEnd:    &past,
			},
			wantOpen:    false,
			wantExpired: false,
		},
		{
			name:        "not applicable without window",
			item:        OrderItem{ReturnWindowStatus: ReturnWindowNotApplicable},
			wantOpen:    false,
			wantExpired: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.WindowOpen(now); got != tt.wantOpen {
				t.Errorf("WindowOpen() = %v, want %v", got, tt.wantOpen)
			}
			if got := tt.item.WindowExpired(now); got != tt.wantExpired {
				t.Errorf("WindowExpired() = %v, want %v", got, tt.wantExpired)
			}
		})
	}
}
