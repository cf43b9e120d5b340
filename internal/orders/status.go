package orders

import "github.com/codclick-aut6/clickprato6-sub000/pkg/enums"

var statusTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusAccepted, enums.OrderStatusCanceled},
	enums.OrderStatusAccepted:   {enums.OrderStatusPreparing, enums.OrderStatusCanceled},
	enums.OrderStatusPreparing:  {enums.OrderStatusDelivering, enums.OrderStatusCanceled},
	enums.OrderStatusDelivering: {enums.OrderStatusCompleted, enums.OrderStatusCanceled},
}

// CanTransition reports whether an order may move from one status to the
// next. Completed and canceled are terminal.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
