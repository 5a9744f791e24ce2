package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

var (
	customerActor = domain.Actor{ID: 1, Name: "Alice", Email: "alice@test.com", Role: domain.UserRoleCustomer}
	operatorActor = domain.Actor{ID: 50, Name: "Omar", Email: "omar@test.com", Role: domain.UserRoleOperator}
	adminActor    = domain.Actor{ID: 99, Name: "Root", Email: "root@test.com", Role: domain.UserRoleAdmin}
)

func newOrderService() (service.OrderService, *MockOrderRepo, *MockProductRepo, *MockAuditRepo, *MockNotificationRepo, *MockEmailService) {
	orderRepo := new(MockOrderRepo)
	productRepo := new(MockProductRepo)
	auditRepo := new(MockAuditRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewOrderService(orderRepo, productRepo, auditRepo, noteRepo, emailSvc)
	return svc, orderRepo, productRepo, auditRepo, noteRepo, emailSvc
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	sofa := &domain.Product{ID: 10, Name: "Sofa", PricePerDayCents: 5000, Available: 5}
	table := &domain.Product{ID: 11, Name: "Table", PricePerDayCents: 3000, Available: 3}

	input := service.CreateOrderInput{
		LineItems: []service.LineItemInput{
			{ProductID: 10, Quantity: 2, RentalDays: 2},
			{ProductID: 11, Quantity: 1, RentalDays: 1},
		},
		StartDate: "2026-09-01",
		EndDate:   "2026-09-15",
	}

	t.Run("Success", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, noteRepo, emailSvc := newOrderService()

		productRepo.On("GetByID", ctx, int32(10)).Return(sofa, nil)
		productRepo.On("GetByID", ctx, int32(11)).Return(table, nil)
		productRepo.On("ReserveStock", ctx, int32(10), int32(2)).Return(nil)
		productRepo.On("ReserveStock", ctx, int32(11), int32(1)).Return(nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)
		auditRepo.On("Record", ctx, mock.AnythingOfType("*domain.AuditEvent")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		emailSvc.On("SendOrderCreated", ctx, "alice@test.com", "Alice", mock.Anything, int64(23000)).Return(nil)

		order, err := svc.CreateOrder(ctx, customerActor, input)
		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		// 5000*2*2 + 3000*1*1
		assert.Equal(t, int64(23000), order.TotalCents)
		assert.Equal(t, "Sofa", order.LineItems[0].ProductName)
		assert.Nil(t, order.Transport)
		productRepo.AssertExpectations(t)
	})

	t.Run("Empty cart", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()
		order, err := svc.CreateOrder(ctx, customerActor, service.CreateOrderInput{StartDate: "2026-09-01", EndDate: "2026-09-02"})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		assert.Nil(t, order)
	})

	t.Run("Invalid date range", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()
		bad := input
		bad.StartDate = "2026-09-15"
		bad.EndDate = "2026-09-01"
		order, err := svc.CreateOrder(ctx, customerActor, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		assert.Nil(t, order)
	})

	t.Run("Equal dates rejected", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()
		bad := input
		bad.StartDate = "2026-09-01"
		bad.EndDate = "2026-09-01"
		_, err := svc.CreateOrder(ctx, customerActor, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("Zero quantity or rental days rejected", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()

		bad := input
		bad.LineItems = []service.LineItemInput{{ProductID: 10, Quantity: 0, RentalDays: 2}}
		_, err := svc.CreateOrder(ctx, customerActor, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidLineItem)

		bad.LineItems = []service.LineItemInput{{ProductID: 10, Quantity: 1, RentalDays: 0}}
		_, err = svc.CreateOrder(ctx, customerActor, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
	})

	t.Run("Insufficient stock rolls back prior reservations", func(t *testing.T) {
		svc, _, productRepo, _, _, _ := newOrderService()

		productRepo.On("GetByID", ctx, int32(10)).Return(sofa, nil)
		productRepo.On("GetByID", ctx, int32(11)).Return(table, nil)
		productRepo.On("ReserveStock", ctx, int32(10), int32(2)).Return(nil)
		productRepo.On("ReserveStock", ctx, int32(11), int32(1)).
			Return(&domain.InsufficientStockError{ProductID: 11, Available: 0, Requested: 1})
		productRepo.On("ReleaseStock", ctx, int32(10), int32(2)).Return(nil)

		order, err := svc.CreateOrder(ctx, customerActor, input)
		assert.Nil(t, order)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(11), stockErr.ProductID)
		productRepo.AssertCalled(t, "ReleaseStock", ctx, int32(10), int32(2))
	})

	t.Run("Transport requested starts negotiation", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, noteRepo, emailSvc := newOrderService()

		productRepo.On("GetByID", ctx, int32(10)).Return(sofa, nil)
		productRepo.On("GetByID", ctx, int32(11)).Return(table, nil)
		productRepo.On("ReserveStock", ctx, mock.Anything, mock.Anything).Return(nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendOrderCreated", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		withTransport := input
		withTransport.TransportRequested = true
		order, err := svc.CreateOrder(ctx, customerActor, withTransport)
		assert.NoError(t, err)
		assert.NotNil(t, order.Transport)
		assert.Equal(t, domain.NegotiationStateRequested, order.Transport.State)
		assert.Equal(t, int64(23000), order.TotalCents, "pending negotiation must not affect the total")
	})
}

func TestOrderService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Customer cannot change status", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()
		_, err := svc.ChangeStatus(ctx, customerActor, 1, domain.OrderStatusConfirmed)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("Confirm fixes installment schedule", func(t *testing.T) {
		svc, orderRepo, _, auditRepo, noteRepo, emailSvc := newOrderService()
		order := &domain.RentalOrder{
			ID: 1, CustomerID: 1, CustomerName: "Alice", CustomerEmail: "alice@test.com",
			Status: domain.OrderStatusPending, TotalCents: 23000, Version: 1,
		}
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendOrderStatusChanged", ctx, "alice@test.com", "Alice", int32(1), domain.OrderStatusConfirmed).Return(nil)

		updated, err := svc.ChangeStatus(ctx, operatorActor, 1, domain.OrderStatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
		assert.Equal(t, int64(11500), updated.PartialPaymentCents)
		assert.Equal(t, int64(11500), updated.FinalPaymentCents)
	})

	t.Run("Skipping a state is rejected with guidance", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newOrderService()
		order := &domain.RentalOrder{ID: 2, Status: domain.OrderStatusPending}
		orderRepo.On("GetByID", ctx, int32(2)).Return(order, nil)

		_, err := svc.ChangeStatus(ctx, operatorActor, 2, domain.OrderStatusCompleted)
		var transitionErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Contains(t, transitionErr.Reason, string(domain.OrderStatusConfirmed))
	})

	t.Run("Same status is an idempotent no-op", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newOrderService()
		order := &domain.RentalOrder{ID: 3, Status: domain.OrderStatusConfirmed}
		orderRepo.On("GetByID", ctx, int32(3)).Return(order, nil)

		updated, err := svc.ChangeStatus(ctx, operatorActor, 3, domain.OrderStatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
		orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Cancelled to cancelled is a no-op, not a rejection", func(t *testing.T) {
		svc, orderRepo, productRepo, _, _, _ := newOrderService()
		order := &domain.RentalOrder{
			ID: 5, Status: domain.OrderStatusCancelled,
			LineItems:     []domain.LineItem{{ProductID: 10, Quantity: 2}},
			StockReleased: true,
			Version:       2,
		}
		orderRepo.On("GetByID", ctx, int32(5)).Return(order, nil)

		updated, err := svc.ChangeStatus(ctx, operatorActor, 5, domain.OrderStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
		orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
		productRepo.AssertNotCalled(t, "ReleaseStock", ctx, mock.Anything, mock.Anything)
	})

	t.Run("Cancel via status change only from pending", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newOrderService()
		order := &domain.RentalOrder{ID: 4, Status: domain.OrderStatusInProgress}
		orderRepo.On("GetByID", ctx, int32(4)).Return(order, nil)

		_, err := svc.ChangeStatus(ctx, operatorActor, 4, domain.OrderStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrNotCancellable)
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	baseOrder := func() *domain.RentalOrder {
		return &domain.RentalOrder{
			ID: 1, CustomerID: 1, CustomerName: "Alice", CustomerEmail: "alice@test.com",
			Status: domain.OrderStatusPending,
			LineItems: []domain.LineItem{
				{ProductID: 10, Quantity: 2},
				{ProductID: 11, Quantity: 1},
			},
			Version: 1,
		}
	}

	t.Run("Cancel restores stock for every line item", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, noteRepo, emailSvc := newOrderService()
		order := baseOrder()

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		productRepo.On("ReleaseStock", ctx, int32(10), int32(2)).Return(nil)
		productRepo.On("ReleaseStock", ctx, int32(11), int32(1)).Return(nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendOrderCancelled", ctx, "alice@test.com", "Alice", int32(1)).Return(nil)

		cancelled, err := svc.CancelOrder(ctx, customerActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
		assert.True(t, cancelled.StockReleased)
		productRepo.AssertExpectations(t)
	})

	t.Run("Lost version check releases nothing", func(t *testing.T) {
		svc, orderRepo, productRepo, _, _, _ := newOrderService()
		order := baseOrder()

		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(domain.ErrOptimisticConflict)

		_, err := svc.CancelOrder(ctx, customerActor, 1)
		assert.ErrorIs(t, err, domain.ErrOptimisticConflict)
		productRepo.AssertNotCalled(t, "ReleaseStock", ctx, mock.Anything, mock.Anything)
	})

	t.Run("Retry after a lost cancel settles without a second release", func(t *testing.T) {
		// The first attempt lost the version check; the re-read order shows
		// the winner already cancelled it and released the stock.
		svc, orderRepo, productRepo, _, _, _ := newOrderService()
		order := baseOrder()
		order.Status = domain.OrderStatusCancelled
		order.StockReleased = true
		order.Version = 2
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		updated, err := svc.ChangeStatus(ctx, operatorActor, 1, domain.OrderStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
		productRepo.AssertNotCalled(t, "ReleaseStock", ctx, mock.Anything, mock.Anything)
	})

	t.Run("Only the owner may cancel", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newOrderService()
		order := baseOrder()
		order.CustomerID = 42
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		_, err := svc.CancelOrder(ctx, customerActor, 1)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("Confirmed order is not cancellable", func(t *testing.T) {
		svc, orderRepo, _, _, _, _ := newOrderService()
		order := baseOrder()
		order.Status = domain.OrderStatusConfirmed
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

		_, err := svc.CancelOrder(ctx, customerActor, 1)
		assert.ErrorIs(t, err, domain.ErrNotCancellable)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin only", func(t *testing.T) {
		svc, _, _, _, _, _ := newOrderService()
		assert.ErrorIs(t, svc.DeleteOrder(ctx, operatorActor, 1), domain.ErrNotOwner)
	})

	t.Run("Deleting a pending order releases its stock first", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, _, _ := newOrderService()
		order := &domain.RentalOrder{
			ID: 1, CustomerID: 1, Status: domain.OrderStatusPending,
			LineItems: []domain.LineItem{{ProductID: 10, Quantity: 2}},
			Version:   1,
		}
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		productRepo.On("ReleaseStock", ctx, int32(10), int32(2)).Return(nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		orderRepo.On("Delete", ctx, int32(1)).Return(nil)

		assert.NoError(t, svc.DeleteOrder(ctx, adminActor, 1))
		productRepo.AssertExpectations(t)
	})

	t.Run("Conflicting delete releases nothing and deletes nothing", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, _, _ := newOrderService()
		order := &domain.RentalOrder{
			ID: 1, CustomerID: 1, Status: domain.OrderStatusPending,
			LineItems: []domain.LineItem{{ProductID: 10, Quantity: 2}},
			Version:   1,
		}
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		orderRepo.On("Update", ctx, order).Return(domain.ErrOptimisticConflict)

		err := svc.DeleteOrder(ctx, adminActor, 1)
		assert.ErrorIs(t, err, domain.ErrOptimisticConflict)
		productRepo.AssertNotCalled(t, "ReleaseStock", ctx, mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("Stock already released is not released twice", func(t *testing.T) {
		svc, orderRepo, productRepo, auditRepo, _, _ := newOrderService()
		order := &domain.RentalOrder{
			ID: 1, CustomerID: 1, Status: domain.OrderStatusCancelled,
			LineItems:     []domain.LineItem{{ProductID: 10, Quantity: 2}},
			StockReleased: true,
			Version:       2,
		}
		orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
		auditRepo.On("Record", ctx, mock.Anything).Return(nil)
		orderRepo.On("Delete", ctx, int32(1)).Return(nil)

		assert.NoError(t, svc.DeleteOrder(ctx, adminActor, 1))
		productRepo.AssertNotCalled(t, "ReleaseStock", ctx, mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	svc, orderRepo, _, _, _, _ := newOrderService()
	order := &domain.RentalOrder{ID: 1, CustomerID: 42}
	orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

	_, err := svc.GetOrder(ctx, customerActor, 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	got, err := svc.GetOrder(ctx, operatorActor, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), got.ID)
}
