package service

import (
	"context"
	"fmt"
	"time"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository"
	"furnirent-backend/internal/utils"
)

const auditModuleOrders = "orders"

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, actor domain.Actor, input CreateOrderInput) (*domain.RentalOrder, error) {
	logger.EnterMethod("orderService.CreateOrder", "customerID", actor.ID, "items", len(input.LineItems))

	if len(input.LineItems) == 0 {
		return nil, domain.ErrEmptyCart
	}
	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", domain.ErrInvalidDateRange, input.StartDate)
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", domain.ErrInvalidDateRange, input.EndDate)
	}
	if !start.Before(end) {
		return nil, domain.ErrInvalidDateRange
	}

	// Resolve products up front so a missing product fails before any
	// stock is touched. Name and price are snapshotted onto the order.
	lineItems := make([]domain.LineItem, 0, len(input.LineItems))
	for _, in := range input.LineItems {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d quantity %d", domain.ErrInvalidLineItem, in.ProductID, in.Quantity)
		}
		if in.RentalDays < 1 {
			return nil, fmt.Errorf("%w: product %d rental days %d", domain.ErrInvalidLineItem, in.ProductID, in.RentalDays)
		}
		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, domain.LineItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPriceCents: product.PricePerDayCents,
			Quantity:       in.Quantity,
			RentalDays:     in.RentalDays,
		})
	}

	// Reserve in line-item order. If any reservation fails, every prior
	// reservation for this order is rolled back before the error is
	// surfaced: creation is all-or-nothing.
	reserved := make([]domain.LineItem, 0, len(lineItems))
	for _, li := range lineItems {
		if err := s.productRepo.ReserveStock(ctx, li.ProductID, li.Quantity); err != nil {
			s.compensateReservations(ctx, reserved)
			logger.ExitMethodWithError("orderService.CreateOrder", err, "customerID", actor.ID)
			return nil, err
		}
		reserved = append(reserved, li)
	}

	order := &domain.RentalOrder{
		CustomerID:          actor.ID,
		CustomerName:        actor.Name,
		CustomerEmail:       actor.Email,
		LineItems:           lineItems,
		Status:              domain.OrderStatusPending,
		DeliveryAddress:     input.DeliveryAddress,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		Notes:               input.Notes,
		CODPayment:          input.CODPayment,
		PartialPaymentState: domain.PaymentStatePending,
		FinalPaymentState:   domain.PaymentStatePending,
	}
	if input.TransportRequested {
		order.Transport = domain.NewTransportNegotiation()
	}
	order.RecomputeTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.compensateReservations(ctx, reserved)
		logger.ExitMethodWithError("orderService.CreateOrder", err, "customerID", actor.ID)
		return nil, err
	}

	s.audit(ctx, actor, "rental-created", order.ID,
		fmt.Sprintf("order created with %d line items, total %s", len(order.LineItems), utils.FormatCents(order.TotalCents)))
	s.notify(ctx, order.CustomerID, "Rental Order Created",
		fmt.Sprintf("Your rental order #%d was created, total %s", order.ID, utils.FormatCents(order.TotalCents)),
		map[string]string{"type": "RENTAL_CREATED", "order_id": fmt.Sprintf("%d", order.ID)})
	if err := s.emailSvc.SendOrderCreated(ctx, order.CustomerEmail, order.CustomerName, order.ID, order.TotalCents); err != nil {
		logger.Error("Order creation email failed", "order_id", order.ID, "error", err)
	}

	logger.ExitMethod("orderService.CreateOrder", "orderID", order.ID, "total_cents", order.TotalCents)
	return order, nil
}

// compensateReservations releases already-reserved line items after a failed
// multi-item reservation. No partial reservation may remain observable.
func (s *orderService) compensateReservations(ctx context.Context, reserved []domain.LineItem) {
	for _, li := range reserved {
		if err := s.productRepo.ReleaseStock(ctx, li.ProductID, li.Quantity); err != nil {
			logger.Error("Failed to roll back reservation", "product_id", li.ProductID, "quantity", li.Quantity, "error", err)
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actor.ID && !actor.IsStaff() {
		return nil, domain.ErrNotOwner
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if actor.IsStaff() {
		return s.orderRepo.List(ctx, status, page, pageSize)
	}
	return s.orderRepo.ListByCustomer(ctx, actor.ID, status, page, pageSize)
}

func (s *orderService) ChangeStatus(ctx context.Context, actor domain.Actor, orderID int32, next domain.OrderStatus) (*domain.RentalOrder, error) {
	logger.EnterMethod("orderService.ChangeStatus", "orderID", orderID, "next", next)

	if !actor.IsStaff() {
		return nil, domain.ErrNotOwner
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == next {
		// Idempotent no-op: nothing to persist, no side effects. This
		// includes CANCELLED -> CANCELLED, so a retried cancellation
		// whose first attempt already won settles quietly.
		return order, nil
	}

	// CANCELLED is not part of the linear chain; a staff-initiated move
	// to CANCELLED follows the cancellation path, PENDING orders only.
	if next == domain.OrderStatusCancelled {
		if order.Status != domain.OrderStatusPending {
			return nil, domain.ErrNotCancellable
		}
		return s.cancel(ctx, actor, order)
	}
	if !domain.IsValidTransition(order.Status, next) {
		return nil, &domain.InvalidTransitionError{
			From:   order.Status,
			To:     next,
			Reason: domain.DescribeTransitionError(order.Status, next),
		}
	}

	// Confirmation fixes the installment schedule. Stock stays reserved;
	// it was already decremented at creation.
	if next == domain.OrderStatusConfirmed {
		utils.ApplySchedule(order)
	}
	order.Status = next

	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("orderService.ChangeStatus", err, "orderID", orderID)
		return nil, err
	}

	s.audit(ctx, actor, "status-changed", order.ID, fmt.Sprintf("order moved to %s", next))
	s.notify(ctx, order.CustomerID, "Rental Order Updated",
		fmt.Sprintf("Your rental order #%d is now %s", order.ID, next),
		map[string]string{"type": "STATUS_CHANGED", "order_id": fmt.Sprintf("%d", order.ID), "status": string(next)})
	if err := s.emailSvc.SendOrderStatusChanged(ctx, order.CustomerEmail, order.CustomerName, order.ID, next); err != nil {
		logger.Error("Status change email failed", "order_id", order.ID, "error", err)
	}

	logger.ExitMethod("orderService.ChangeStatus", "orderID", orderID, "status", next)
	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error) {
	logger.EnterMethod("orderService.CancelOrder", "orderID", orderID, "actorID", actor.ID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrNotCancellable
	}
	return s.cancel(ctx, actor, order)
}

// cancel moves the order to CANCELLED with the stock-released flag set, then
// returns the reserved units. The flag commits under the version guard before
// any unit is touched, so a writer that loses the version check, or a retry
// against a re-read order, observes the flag and releases nothing.
func (s *orderService) cancel(ctx context.Context, actor domain.Actor, order *domain.RentalOrder) (*domain.RentalOrder, error) {
	releasing := !order.StockReleased
	order.Status = domain.OrderStatusCancelled
	order.StockReleased = true

	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("orderService.cancel", err, "orderID", order.ID)
		return nil, err
	}
	if releasing {
		s.releaseOrderStock(ctx, order)
	}

	s.audit(ctx, actor, "rental-cancelled", order.ID, "order cancelled, stock released")
	s.notify(ctx, order.CustomerID, "Rental Order Cancelled",
		fmt.Sprintf("Your rental order #%d was cancelled", order.ID),
		map[string]string{"type": "RENTAL_CANCELLED", "order_id": fmt.Sprintf("%d", order.ID)})
	if err := s.emailSvc.SendOrderCancelled(ctx, order.CustomerEmail, order.CustomerName, order.ID); err != nil {
		logger.Error("Cancellation email failed", "order_id", order.ID, "error", err)
	}

	logger.ExitMethod("orderService.cancel", "orderID", order.ID)
	return order, nil
}

// releaseOrderStock returns every reserved unit after the releasing write has
// committed. The durable flag already marks the stock as released, so a
// failed release here cannot be retried through the order; failures are
// logged for manual reconciliation.
func (s *orderService) releaseOrderStock(ctx context.Context, order *domain.RentalOrder) {
	for _, li := range order.LineItems {
		if err := s.productRepo.ReleaseStock(ctx, li.ProductID, li.Quantity); err != nil {
			logger.Error("Stock release failed", "order_id", order.ID, "product_id", li.ProductID, "quantity", li.Quantity, "error", err)
		}
	}
}

func (s *orderService) DeleteOrder(ctx context.Context, actor domain.Actor, orderID int32) error {
	logger.EnterMethod("orderService.DeleteOrder", "orderID", orderID, "actorID", actor.ID)

	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrNotOwner
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Audit before physical removal so the event retains order detail.
	s.audit(ctx, actor, "rental-deleted", order.ID,
		fmt.Sprintf("order deleted in status %s, customer %d, total %s", order.Status, order.CustomerID, utils.FormatCents(order.TotalCents)))

	// Commit the flag under the version guard before releasing, so a
	// racing delete or cancel observes either the flag or a conflict,
	// never a second release.
	if !order.StockReleased {
		order.StockReleased = true
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		s.releaseOrderStock(ctx, order)
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		logger.ExitMethodWithError("orderService.DeleteOrder", err, "orderID", orderID)
		return err
	}
	logger.ExitMethod("orderService.DeleteOrder", "orderID", orderID)
	return nil
}

func (s *orderService) audit(ctx context.Context, actor domain.Actor, action string, entityID int32, detail string) {
	event := newAuditEvent(actor, action, entityID, detail)
	if err := s.auditRepo.Record(ctx, event); err != nil {
		logger.Error("Audit record failed", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *orderService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
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
