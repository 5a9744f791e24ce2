package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/utils"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendOrderCreated(ctx context.Context, email, name string, orderID int32, totalCents int64) error {
	subject := fmt.Sprintf("Rental Order #%d Created", orderID)
	body := fmt.Sprintf("Hi %s,\n\nYour rental order #%d was created. The total is %s.\n\nThanks for renting with us!",
		name, orderID, utils.FormatCents(totalCents))
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendOrderStatusChanged(ctx context.Context, email, name string, orderID int32, status domain.OrderStatus) error {
	subject := fmt.Sprintf("Rental Order #%d Updated", orderID)
	body := fmt.Sprintf("Hi %s,\n\nYour rental order #%d is now %s.", name, orderID, status)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendOrderCancelled(ctx context.Context, email, name string, orderID int32) error {
	subject := fmt.Sprintf("Rental Order #%d Cancelled", orderID)
	body := fmt.Sprintf("Hi %s,\n\nYour rental order #%d was cancelled and the reserved items were released.", name, orderID)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendInstallmentReceipt(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error {
	subject := fmt.Sprintf("Payment Received for Order #%d", orderID)
	body := fmt.Sprintf("Hi %s,\n\nWe received your %s installment of %s for rental order #%d.",
		name, kind, utils.FormatCents(amountCents), orderID)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendInstallmentReminder(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error {
	subject := fmt.Sprintf("Payment Reminder for Order #%d", orderID)
	body := fmt.Sprintf("Hi %s,\n\nA friendly reminder: the %s installment of %s for rental order #%d is still pending.",
		name, kind, utils.FormatCents(amountCents), orderID)
	return s.send(email, name, subject, body)
}

func (s *sendGridEmailService) SendTransportFeeAccepted(ctx context.Context, email, name string, orderID int32, feeCents int64) error {
	subject := fmt.Sprintf("Transport Fee Agreed for Order #%d", orderID)
	body := fmt.Sprintf("Hi %s,\n\nThe transport fee of %s for rental order #%d was accepted and added to your order total.",
		name, utils.FormatCents(feeCents), orderID)
	return s.send(email, name, subject, body)
}
