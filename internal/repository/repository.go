package repository

import (
	"context"
	"time"

	"furnirent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, category string, page, pageSize int32) ([]domain.Product, int32, error)
	GetAvailable(ctx context.Context, id int32) (int32, error)

	// ReserveStock atomically decrements availability. It either commits
	// the full quantity or performs no mutation at all, returning
	// *domain.InsufficientStockError when availability is short.
	ReserveStock(ctx context.Context, productID, quantity int32) error
	// ReleaseStock increments availability; used on cancellation and
	// administrative deletion.
	ReleaseStock(ctx context.Context, productID, quantity int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error)
	// Update persists the order guarded by its version: the write succeeds
	// only if the stored version still equals order.Version, otherwise
	// domain.ErrOptimisticConflict is returned and nothing is written.
	Update(ctx context.Context, order *domain.RentalOrder) error
	Delete(ctx context.Context, id int32) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.RentalOrder, error)
	ListAwaitingInstallment(ctx context.Context) ([]domain.RentalOrder, error)
}

type PaymentRepository interface {
	// Create appends an immutable payment record. There is no update.
	Create(ctx context.Context, payment *domain.Payment) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Payment, error)
}

type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
	ListByEntity(ctx context.Context, module string, entityID int32) ([]domain.AuditEvent, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
