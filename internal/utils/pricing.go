package utils

import (
	"fmt"
	"time"

	"furnirent-backend/internal/domain"
)

// PaymentSchedule is the two-installment split of an order total.
type PaymentSchedule struct {
	PartialCents int64
	FinalCents   int64
}

// ComputeSchedule derives the 50/50 installment split from an order total.
// The partial installment is half the total rounded to the nearest cent
// (half-cents round up); the final installment is the remainder, so the two
// always sum exactly to the total.
func ComputeSchedule(totalCents int64) PaymentSchedule {
	partial := (totalCents + 1) / 2
	return PaymentSchedule{
		PartialCents: partial,
		FinalCents:   totalCents - partial,
	}
}

// ApplySchedule computes and stores the installment schedule on an order.
// Called at the CONFIRMED transition. Both installments start PENDING.
func ApplySchedule(order *domain.RentalOrder) {
	sched := ComputeSchedule(order.TotalCents)
	order.PartialPaymentCents = sched.PartialCents
	order.PartialPaymentState = domain.PaymentStatePending
	order.FinalPaymentCents = sched.FinalCents
	order.FinalPaymentState = domain.PaymentStatePending
}

// RescheduleAfterTotalChange re-derives the installment split after the
// order total changed (an accepted transport fee). A PAID partial
// installment is never touched: the whole delta lands on the final
// installment. If the partial is still pending, the full 50/50 split is
// recomputed against the new total.
func RescheduleAfterTotalChange(order *domain.RentalOrder) {
	if order.Status == domain.OrderStatusPending {
		// No schedule yet; CONFIRMED will derive it from the
		// transport-inclusive total.
		return
	}
	if order.PartialPaymentState == domain.PaymentStatePaid {
		order.FinalPaymentCents = order.TotalCents - order.PartialPaymentCents
		return
	}
	sched := ComputeSchedule(order.TotalCents)
	order.PartialPaymentCents = sched.PartialCents
	order.FinalPaymentCents = sched.FinalCents
}

// MarkPartialPaid transitions the partial installment to PAID. The order
// must be CONFIRMED with the partial installment still pending.
func MarkPartialPaid(order *domain.RentalOrder, paidAt time.Time) error {
	if order.Status != domain.OrderStatusConfirmed {
		return fmt.Errorf("%w: partial installment requires a %s order, got %s",
			domain.ErrInvalidPaymentState, domain.OrderStatusConfirmed, order.Status)
	}
	if order.PartialPaymentState != domain.PaymentStatePending {
		return fmt.Errorf("%w: partial installment already %s",
			domain.ErrInvalidPaymentState, order.PartialPaymentState)
	}
	order.PartialPaymentState = domain.PaymentStatePaid
	order.PartialPaymentDate = &paidAt
	return nil
}

// MarkFinalPaid transitions the final installment to PAID. The order must
// be COMPLETED with the final installment still pending.
func MarkFinalPaid(order *domain.RentalOrder, paidAt time.Time) error {
	if order.Status != domain.OrderStatusCompleted {
		return fmt.Errorf("%w: final installment requires a %s order, got %s",
			domain.ErrInvalidPaymentState, domain.OrderStatusCompleted, order.Status)
	}
	if order.FinalPaymentState != domain.PaymentStatePending {
		return fmt.Errorf("%w: final installment already %s",
			domain.ErrInvalidPaymentState, order.FinalPaymentState)
	}
	order.FinalPaymentState = domain.PaymentStatePaid
	order.FinalPaymentDate = &paidAt
	return nil
}

// FormatCents renders a cent amount as a dollar string for notifications.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
