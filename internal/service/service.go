package service

import (
	"context"

	"furnirent-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type ProductService interface {
	AddProduct(ctx context.Context, actor domain.Actor, product *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	ListProducts(ctx context.Context, category string, page, pageSize int32) ([]domain.Product, int32, error)
}

// LineItemInput identifies a product to rent; name and price are resolved
// and snapshotted by the service at creation time.
type LineItemInput struct {
	ProductID  int32 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	RentalDays int32 `json:"rental_days"`
}

type CreateOrderInput struct {
	LineItems          []LineItemInput `json:"line_items"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	DeliveryAddress    string          `json:"delivery_address"`
	Notes              string          `json:"notes"`
	TransportRequested bool            `json:"transport_requested"`
	CODPayment         bool            `json:"cod_payment"`
}

// OrderService owns the rental order lifecycle: creation with all-or-nothing
// stock reservation, validated status transitions with their side effects,
// cancellation and administrative deletion.
type OrderService interface {
	CreateOrder(ctx context.Context, actor domain.Actor, input CreateOrderInput) (*domain.RentalOrder, error)
	GetOrder(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error)
	ListOrders(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, orderID int32, next domain.OrderStatus) (*domain.RentalOrder, error)
	CancelOrder(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error)
	DeleteOrder(ctx context.Context, actor domain.Actor, orderID int32) error
}

// TransportService applies the delivery-fee negotiation protocol to an
// order, re-persisting the recomputed total on acceptance.
type TransportService interface {
	ProposeFee(ctx context.Context, actor domain.Actor, orderID int32, feeCents int64) (*domain.RentalOrder, error)
	AcceptFee(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error)
	RejectFee(ctx context.Context, actor domain.Actor, orderID int32) (*domain.RentalOrder, error)
}

type PaymentService interface {
	PayInstallment(ctx context.Context, actor domain.Actor, orderID int32, kind domain.InstallmentKind, details domain.PaymentMethodDetails) (*domain.Payment, error)
	ListOrderPayments(ctx context.Context, actor domain.Actor, orderID int32) ([]domain.Payment, error)
	ListMyPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService delivers notification requests emitted by the engine.
// Callers treat every send as fire-and-forget: failures are logged and
// swallowed, never surfaced to the initiating operation.
type EmailService interface {
	SendOrderCreated(ctx context.Context, email, name string, orderID int32, totalCents int64) error
	SendOrderStatusChanged(ctx context.Context, email, name string, orderID int32, status domain.OrderStatus) error
	SendOrderCancelled(ctx context.Context, email, name string, orderID int32) error
	SendInstallmentReceipt(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error
	SendInstallmentReminder(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error
	SendTransportFeeAccepted(ctx context.Context, email, name string, orderID int32, feeCents int64) error
}
