package jobs

import (
	"context"
	"time"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
)

// systemActor is the identity scheduled jobs act under. It carries the
// OPERATOR role so job-driven transitions pass the same checks as
// staff-initiated ones.
var systemActor = domain.Actor{
	ID:    0,
	Name:  "system",
	Email: "system@furnirent",
	Role:  domain.UserRoleOperator,
}

// ExpireStalePendingOrders cancels PENDING orders that sat unconfirmed past
// the configured expiry window, releasing their reserved stock.
func (jr *JobRunner) ExpireStalePendingOrders() {
	jr.runWithRecovery("ExpireStalePendingOrders", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Orders.PendingExpiryDays)
		stale, err := jr.store.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending orders", "error", err)
			return
		}

		count := 0
		for _, order := range stale {
			// The cancellation path releases stock and notifies the
			// customer; an optimistic conflict means someone else moved
			// the order first, which is fine.
			if _, err := jr.services.Order.ChangeStatus(ctx, systemActor, order.ID, domain.OrderStatusCancelled); err != nil {
				logger.Error("Failed to expire pending order", "order_id", order.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Expired stale pending order",
				"order_id", order.ID,
				"customer_id", order.CustomerID,
				"created_on", order.CreatedOn)
		}

		logger.Info("Expired stale pending orders", "count", count, "cutoff", cutoff.Format("2006-01-02"))
	})
}

// SendInstallmentReminders emails customers whose next installment is still
// pending: the partial one on CONFIRMED orders, the final one on COMPLETED
// orders. Cash-on-delivery orders are settled in person and are skipped by
// the repository query.
func (jr *JobRunner) SendInstallmentReminders() {
	jr.runWithRecovery("SendInstallmentReminders", func() {
		ctx := context.Background()

		orders, err := jr.store.ListAwaitingInstallment(ctx)
		if err != nil {
			logger.Error("Failed to list orders awaiting installment", "error", err)
			return
		}

		count := 0
		for _, order := range orders {
			kind := domain.InstallmentPartial
			amount := order.PartialPaymentCents
			if order.Status == domain.OrderStatusCompleted {
				kind = domain.InstallmentFinal
				amount = order.FinalPaymentCents
			}

			if err := jr.services.Email.SendInstallmentReminder(ctx, order.CustomerEmail, order.CustomerName, order.ID, kind, amount); err != nil {
				logger.Error("Failed to send installment reminder", "order_id", order.ID, "kind", kind, "error", err)
				continue
			}
			count++
		}

		logger.Info("Sent installment reminders", "count", count)
	})
}
