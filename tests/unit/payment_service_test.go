package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

func newPaymentService() (service.PaymentService, *MockOrderRepo, *MockPaymentRepo, *MockAuditRepo, *MockNotificationRepo, *MockEmailService) {
	orderRepo := new(MockOrderRepo)
	paymentRepo := new(MockPaymentRepo)
	auditRepo := new(MockAuditRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewPaymentService(orderRepo, paymentRepo, auditRepo, noteRepo, emailSvc)
	return svc, orderRepo, paymentRepo, auditRepo, noteRepo, emailSvc
}

func confirmedOrder() *domain.RentalOrder {
	return &domain.RentalOrder{
		ID: 1, CustomerID: 1, CustomerName: "Alice", CustomerEmail: "alice@test.com",
		Status:              domain.OrderStatusConfirmed,
		TotalCents:          23000,
		PartialPaymentCents: 11500,
		PartialPaymentState: domain.PaymentStatePending,
		FinalPaymentCents:   11500,
		FinalPaymentState:   domain.PaymentStatePending,
		Version:             2,
	}
}

func TestPaymentService_PayInstallment(t *testing.T) {
	ctx := context.Background()
	card := domain.PaymentMethodDetails{Method: "VISA", Last4Digits: "4242"}

	t.Run("Partial on confirmed order", func(t *testing.T) {
		svc, orderRepo, paymentRepo, auditRepo, noteRepo, emailSvc := newPaymentService()
		order := confirmedOrder()

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendInstallmentReceipt", ctx, "alice@test.com", "Alice", int32(1), domain.InstallmentPartial, int64(11500)).Return(nil)

		payment, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentPartial, card)
		assert.NoError(t, err)
		assert.Equal(t, int64(11500), payment.AmountCents)
		assert.Equal(t, domain.InstallmentPartial, payment.Kind)
		assert.Equal(t, "4242", payment.Last4Digits)
		assert.NotEmpty(t, payment.TransactionRef)
		assert.Equal(t, domain.PaymentStatePaid, order.PartialPaymentState)
		assert.NotNil(t, order.PartialPaymentDate)
	})

	t.Run("Partial cannot be paid twice", func(t *testing.T) {
		svc, orderRepo, paymentRepo, _, _, _ := newPaymentService()
		order := confirmedOrder()
		order.PartialPaymentState = domain.PaymentStatePaid

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		_, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentPartial, card)
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentState)
		paymentRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Final requires completed order", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newPaymentService()
		order := confirmedOrder() // still CONFIRMED

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		_, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentFinal, card)
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentState)
	})

	t.Run("Final on completed order", func(t *testing.T) {
		svc, orderRepo, paymentRepo, auditRepo, noteRepo, emailSvc := newPaymentService()
		order := confirmedOrder()
		order.Status = domain.OrderStatusCompleted
		order.PartialPaymentState = domain.PaymentStatePaid

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendInstallmentReceipt", ctx, "alice@test.com", "Alice", int32(1), domain.InstallmentFinal, int64(11500)).Return(nil)

		payment, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentFinal, card)
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallmentFinal, payment.Kind)
		assert.Equal(t, domain.PaymentStatePaid, order.FinalPaymentState)
	})

	t.Run("Stranger cannot pay", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newPaymentService()
		order := confirmedOrder()
		order.CustomerID = 42

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		_, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentPartial, card)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("Optimistic conflict surfaces without a payment record", func(t *testing.T) {
		svc, orderRepo, paymentRepo, _, _, _ := newPaymentService()
		order := confirmedOrder()

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(domain.ErrOptimisticConflict)

		_, err := svc.PayInstallment(ctx, customerActor, 1, domain.InstallmentPartial, card)
		assert.ErrorIs(t, err, domain.ErrOptimisticConflict)
		paymentRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestPaymentService_ListOrderPayments(t *testing.T) {
	ctx := context.Background()

	svc, orderRepo, paymentRepo, _, _, _ := newPaymentService()
	order := confirmedOrder()
	order.CustomerID = 42
	orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

	_, err := svc.ListOrderPayments(ctx, customerActor, 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	paymentRepo.On("ListByOrder", ctx, int32(1)).Return([]domain.Payment{{ID: 7, OrderID: 1}}, nil)
	payments, err := svc.ListOrderPayments(ctx, operatorActor, 1)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
}
