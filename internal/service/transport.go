package service

import (
	"context"
	"fmt"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository"
	"furnirent-backend/internal/utils"
)

type transportService struct {
	orderRepo repository.OrderRepository
	auditRepo repository.AuditRepository
	noteRepo  repository.NotificationRepository
	emailSvc  EmailService
}

func NewTransportService(
	orderRepo repository.OrderRepository,
	auditRepo repository.AuditRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) TransportService {
	return &transportService{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		noteRepo:  noteRepo,
		emailSvc:  emailSvc,
	}
}

// loadNegotiableOrder fetches the order and checks the actor may take part
// in its transport negotiation: the owning customer on the customer side,
// any operator or admin on the operator side.
func (s *transportService) loadNegotiableOrder(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && order.CustomerID != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if order.Transport == nil {
		return nil, fmt.Errorf("%w: delivery was not requested for this order", domain.ErrInvalidNegotiationState)
	}
	return order, nil
}

func (s *transportService) ProposeFee(ctx context.Context, actor domain.Actor, orderID int32, feeCents int64) (*domain.RentalOrder, error) {
	logger.EnterMethod("transportService.ProposeFee", "orderID", orderID, "fee_cents", feeCents, "role", actor.Role)

	order, err := s.loadNegotiableOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if actor.IsStaff() {
		err = order.Transport.ProposeByOperator(feeCents)
	} else {
		err = order.Transport.ProposeByCustomer(feeCents)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("transportService.ProposeFee", err, "orderID", orderID)
		return nil, err
	}

	s.audit(ctx, actor, "transport-fee-proposed", order,
		fmt.Sprintf("%s proposed transport fee %s", order.Transport.LastProposer, utils.FormatCents(feeCents)))
	s.notifyCounterparty(ctx, actor, order, "Transport Fee Proposed",
		fmt.Sprintf("A transport fee of %s was proposed for order #%d", utils.FormatCents(feeCents), order.ID))

	logger.ExitMethod("transportService.ProposeFee", "orderID", orderID, "state", order.Transport.State)
	return order, nil
}

func (s *transportService) AcceptFee(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error) {
	logger.EnterMethod("transportService.AcceptFee", "orderID", orderID, "role", actor.Role)

	order, err := s.loadNegotiableOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	var fee int64
	if actor.IsStaff() {
		fee, err = order.Transport.AcceptByOperator()
	} else {
		fee, err = order.Transport.AcceptByCustomer()
	}
	if err != nil {
		return nil, err
	}

	// The accepted fee joins the total exactly once; the installment
	// split is re-derived without ever touching a paid partial.
	order.RecomputeTotal()
	utils.RescheduleAfterTotalChange(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("transportService.AcceptFee", err, "orderID", orderID)
		return nil, err
	}

	s.audit(ctx, actor, "transport-fee-accepted", order,
		fmt.Sprintf("transport fee %s accepted, order total now %s", utils.FormatCents(fee), utils.FormatCents(order.TotalCents)))
	s.notifyCounterparty(ctx, actor, order, "Transport Fee Accepted",
		fmt.Sprintf("The transport fee of %s for order #%d was accepted", utils.FormatCents(fee), order.ID))
	if err := s.emailSvc.SendTransportFeeAccepted(ctx, order.CustomerEmail, order.CustomerName, order.ID, fee); err != nil {
		logger.Error("Transport acceptance email failed", "order_id", order.ID, "error", err)
	}

	logger.ExitMethod("transportService.AcceptFee", "orderID", orderID, "accepted_fee_cents", fee)
	return order, nil
}

func (s *transportService) RejectFee(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error) {
	logger.EnterMethod("transportService.RejectFee", "orderID", orderID, "role", actor.Role)

	order, err := s.loadNegotiableOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if actor.IsStaff() {
		err = order.Transport.RejectByOperator()
	} else {
		err = order.Transport.RejectByCustomer()
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		logger.ExitMethodWithError("transportService.RejectFee", err, "orderID", orderID)
		return nil, err
	}

	s.audit(ctx, actor, "transport-fee-rejected", order, "transport fee proposal rejected")
	s.notifyCounterparty(ctx, actor, order, "Transport Fee Rejected",
		fmt.Sprintf("The transport fee proposal for order #%d was rejected", order.ID))

	logger.ExitMethod("transportService.RejectFee", "orderID", orderID)
	return order, nil
}

func (s *transportService) audit(ctx context.Context, actor domain.Actor, action string, order *domain.RentalOrder, detail string) {
	event := newAuditEvent(actor, action, order.ID, detail)
	if err := s.auditRepo.Record(ctx, event); err != nil {
		logger.Error("Audit record failed", "action", action, "order_id", order.ID, "error", err)
	}
}

// notifyCounterparty posts an in-app notification to the customer when an
// operator acted; operator-side notifications go through the staff feed and
// are keyed to the customer record otherwise.
func (s *transportService) notifyCounterparty(ctx context.Context, actor domain.Actor, order *domain.RentalOrder, title, message string) {
	note := &domain.Notification{
		UserID:  order.CustomerID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":     "TRANSPORT_NEGOTIATION",
			"order_id": fmt.Sprintf("%d", order.ID),
			"state":    string(order.Transport.State),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Notification create failed", "order_id", order.ID, "title", title, "error", err)
	}
}
