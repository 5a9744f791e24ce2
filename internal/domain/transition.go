package domain

import "fmt"

// statusSuccessor is the linear order lifecycle. CANCELLED is deliberately
// absent: it is reachable only from PENDING through the cancel operation,
// never through a regular status change.
var statusSuccessor = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusCompleted,
}

// IsTerminalStatus reports whether a status has no outgoing transitions.
func IsTerminalStatus(s OrderStatus) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// IsValidTransition reports whether moving from current to next is legal:
// either a no-op (current == next) or the single successor in the chain.
// Skipping a state or moving backward is never valid.
func IsValidTransition(current, next OrderStatus) bool {
	if current == next {
		return true
	}
	succ, ok := statusSuccessor[current]
	return ok && succ == next
}

// AllowedNext returns the single successor of current, if any.
func AllowedNext(current OrderStatus) (OrderStatus, bool) {
	succ, ok := statusSuccessor[current]
	return succ, ok
}

// DescribeTransitionError explains why (current, next) was rejected.
func DescribeTransitionError(current, next OrderStatus) string {
	if current == next {
		return fmt.Sprintf("order is already %s", current)
	}
	if IsTerminalStatus(current) {
		return fmt.Sprintf("order is %s, a terminal state with no further transitions", current)
	}
	succ := statusSuccessor[current]
	return fmt.Sprintf("cannot move from %s to %s: order must go through %s first", current, next, succ)
}
