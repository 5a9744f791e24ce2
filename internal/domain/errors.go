package domain

import (
	"errors"
	"fmt"
)

// Engine errors. All of these are recoverable-by-caller conditions that map
// to a client-facing rejection, never a crash.
var (
	ErrInvalidDateRange        = errors.New("start date must be before end date")
	ErrEmptyCart               = errors.New("order must contain at least one line item")
	ErrInvalidLineItem         = errors.New("line item quantity and rental days must be at least 1")
	ErrProductNotFound         = errors.New("product not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrNotCancellable          = errors.New("order can no longer be cancelled")
	ErrInvalidPaymentState     = errors.New("installment cannot be paid in the order's current state")
	ErrInvalidNegotiationState = errors.New("operation not permitted in the current negotiation state")
	ErrNotOwner                = errors.New("actor is not permitted to act on this resource")

	// ErrOptimisticConflict means the record changed under us. Callers
	// should re-read and retry, never merge.
	ErrOptimisticConflict = errors.New("record was modified concurrently, re-read and retry")
)

// InsufficientStockError reports a failed reservation. The failed reserve
// performs no mutation; the order-level rollback is the caller's job.
type InsufficientStockError struct {
	ProductID int32
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}

// InvalidTransitionError carries the human-readable rejection reason from
// the transition table.
type InvalidTransitionError struct {
	From   OrderStatus
	To     OrderStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s: %s", e.From, e.To, e.Reason)
}
