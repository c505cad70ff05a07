package orders

import "github.com/avelarq/tableside-backend/pkg/enums"

// validTransitions is the single source of truth for the order lifecycle.
// pending is the sole initial state; completed and cancelled are terminal.
var validTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed: {enums.OrderStatusPreparing, enums.OrderStatusCancelled},
	enums.OrderStatusPreparing: {enums.OrderStatusReady, enums.OrderStatusCancelled},
	enums.OrderStatusReady:     {enums.OrderStatusDelivered, enums.OrderStatusCancelled},
	enums.OrderStatusDelivered: {enums.OrderStatusCompleted},
	enums.OrderStatusCompleted: {},
	enums.OrderStatusCancelled: {},
}

// IsValidStatusTransition reports whether an order may move from one status
// to another. Pure lookup; enforcement happens in the service before any
// persisted state changes.
func IsValidStatusTransition(from, to enums.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// CanCancelOrder reports whether an order in the given status can still be
// cancelled by the guest. Once delivered, cancellation requires a refund
// flow instead.
func CanCancelOrder(status enums.OrderStatus) bool {
	switch status {
	case enums.OrderStatusPending, enums.OrderStatusConfirmed, enums.OrderStatusPreparing, enums.OrderStatusReady:
		return true
	default:
		return false
	}
}

// CanModifyOrder reports whether the kitchen has not started on the order
// yet, i.e. items may still change.
func CanModifyOrder(status enums.OrderStatus) bool {
	return status == enums.OrderStatusPending || status == enums.OrderStatusConfirmed
}
