package postgres

import (
	"context"
	"database/sql"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (order_id, customer_id, amount_cents, kind, method, last4_digits, transaction_ref, paid_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.OrderID, p.CustomerID, p.AmountCents, p.Kind, p.Method, p.Last4Digits, p.TransactionRef, p.PaidAt).Scan(&p.ID)
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT id, order_id, customer_id, amount_cents, kind, method, last4_digits, transaction_ref, paid_at
		FROM payments WHERE order_id = $1 ORDER BY paid_at`, orderID)
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT id, order_id, customer_id, amount_cents, kind, method, last4_digits, transaction_ref, paid_at
		FROM payments WHERE customer_id = $1 ORDER BY paid_at DESC`, customerID)
}

func (r *paymentRepository) list(ctx context.Context, query string, arg int32) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.CustomerID, &p.AmountCents, &p.Kind, &p.Method, &p.Last4Digits, &p.TransactionRef, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
