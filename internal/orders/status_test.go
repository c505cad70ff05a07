package orders

import (
	"testing"

	"github.com/avelarq/tableside-backend/pkg/enums"
)

func TestIsValidStatusTransition(t *testing.T) {
	cases := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
		want bool
	}{
		{enums.OrderStatusPending, enums.OrderStatusConfirmed, true},
		{enums.OrderStatusPending, enums.OrderStatusCancelled, true},
		{enums.OrderStatusPending, enums.OrderStatusCompleted, false},
		{enums.OrderStatusPending, enums.OrderStatusReady, false},
		{enums.OrderStatusConfirmed, enums.OrderStatusPreparing, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusCancelled, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusDelivered, false},
		{enums.OrderStatusPreparing, enums.OrderStatusReady, true},
		{enums.OrderStatusPreparing, enums.OrderStatusCancelled, true},
		{enums.OrderStatusReady, enums.OrderStatusDelivered, true},
		{enums.OrderStatusReady, enums.OrderStatusCancelled, true},
		{enums.OrderStatusDelivered, enums.OrderStatusCompleted, true},
		{enums.OrderStatusDelivered, enums.OrderStatusCancelled, false},
		{enums.OrderStatusCompleted, enums.OrderStatusPending, false},
		{enums.OrderStatusCancelled, enums.OrderStatusPending, false},
		{enums.OrderStatusCancelled, enums.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := IsValidStatusTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("IsValidStatusTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	for _, terminal := range []enums.OrderStatus{enums.OrderStatusCompleted, enums.OrderStatusCancelled} {
		if !terminal.IsTerminal() {
			t.Fatalf("expected %s to report terminal", terminal)
		}
		if len(validTransitions[terminal]) != 0 {
			t.Fatalf("expected %s to have no outgoing transitions", terminal)
		}
	}
	for from, targets := range validTransitions {
		if from.IsTerminal() != (len(targets) == 0) {
			t.Fatalf("IsTerminal disagrees with the transition table for %s", from)
		}
	}
}

func TestCanCancelOrder(t *testing.T) {
	cancellable := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusConfirmed,
		enums.OrderStatusPreparing,
		enums.OrderStatusReady,
	}
	for _, status := range cancellable {
		if !CanCancelOrder(status) {
			t.Fatalf("expected %s to be cancellable", status)
		}
	}
	for _, status := range []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusCompleted, enums.OrderStatusCancelled} {
		if CanCancelOrder(status) {
			t.Fatalf("expected %s to not be cancellable", status)
		}
	}
}

func TestCanModifyOrder(t *testing.T) {
	if !CanModifyOrder(enums.OrderStatusPending) {
		t.Fatal("pending orders should be modifiable")
	}
	if !CanModifyOrder(enums.OrderStatusConfirmed) {
		t.Fatal("confirmed orders should be modifiable")
	}
	for _, status := range []enums.OrderStatus{enums.OrderStatusPreparing, enums.OrderStatusReady, enums.OrderStatusDelivered, enums.OrderStatusCompleted, enums.OrderStatusCancelled} {
		if CanModifyOrder(status) {
			t.Fatalf("expected %s to not be modifiable", status)
		}
	}
}
