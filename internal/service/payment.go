package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository"
	"furnirent-backend/internal/utils"
)

type paymentService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	auditRepo   repository.AuditRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func (s *paymentService) PayInstallment(ctx context.Context, actor domain.Actor, orderID int32, kind domain.InstallmentKind, details domain.PaymentMethodDetails) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.PayInstallment", "orderID", orderID, "kind", kind)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actor.ID && !actor.IsStaff() {
		return nil, domain.ErrNotOwner
	}

	paidAt := time.Now()
	var amount int64
	switch kind {
	case domain.InstallmentPartial:
		if err := utils.MarkPartialPaid(order, paidAt); err != nil {
			return nil, err
		}
		amount = order.PartialPaymentCents
	case domain.InstallmentFinal:
		if err := utils.MarkFinalPaid(order, paidAt); err != nil {
			return nil, err
		}
		amount = order.FinalPaymentCents
	default:
		return nil, fmt.Errorf("%w: unknown installment kind %q", domain.ErrInvalidPaymentState, kind)
	}

	// The order flips to PAID under the version guard first; two concurrent
	// payments of the same installment collapse to one winner. The payment
	// record is appended only after the flip sticks.
	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("paymentService.PayInstallment", err, "orderID", orderID)
		return nil, err
	}

	payment := &domain.Payment{
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		AmountCents:    amount,
		Kind:           kind,
		Method:         details.Method,
		Last4Digits:    details.Last4Digits,
		TransactionRef: uuid.NewString(),
		PaidAt:         paidAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		logger.ExitMethodWithError("paymentService.PayInstallment", err, "orderID", orderID)
		return nil, err
	}

	s.audit(ctx, actor, "installment-paid", order.ID,
		fmt.Sprintf("%s installment of %s paid via %s", kind, utils.FormatCents(amount), details.Method))
	s.notify(ctx, order.CustomerID, "Installment Paid",
		fmt.Sprintf("Payment of %s received for order #%d", utils.FormatCents(amount), order.ID),
		map[string]string{"type": "INSTALLMENT_PAID", "order_id": fmt.Sprintf("%d", order.ID), "kind": string(kind)})
	if err := s.emailSvc.SendInstallmentReceipt(ctx, order.CustomerEmail, order.CustomerName, order.ID, kind, amount); err != nil {
		logger.Error("Installment receipt email failed", "order_id", order.ID, "error", err)
	}

	logger.ExitMethod("paymentService.PayInstallment", "orderID", orderID, "payment_id", payment.ID, "amount_cents", amount)
	return payment, nil
}

func (s *paymentService) ListOrderPayments(ctx context.Context, actor domain.Actor, orderID int32) ([]domain.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actor.ID && !actor.IsStaff() {
		return nil, domain.ErrNotOwner
	}
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

func (s *paymentService) ListMyPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error) {
	return s.paymentRepo.ListByCustomer(ctx, actor.ID)
}

func (s *paymentService) audit(ctx context.Context, actor domain.Actor, action string, entityID int32, detail string) {
	event := newAuditEvent(actor, action, entityID, detail)
	if err := s.auditRepo.Record(ctx, event); err != nil {
		logger.Error("Audit record failed", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *paymentService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Notification create failed", "user_id", userID, "title", title, "error", err)
	}
}
