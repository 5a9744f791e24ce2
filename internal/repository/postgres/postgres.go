package postgres

import (
	"database/sql"

	"furnirent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.OrderRepository
	repository.PaymentRepository
	repository.AuditRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProductRepository:      NewProductRepository(db),
		OrderRepository:        NewOrderRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		AuditRepository:        NewAuditRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
