package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_id, customer_name, customer_email, line_items, status, total_cents,
	delivery_address, start_date, end_date, notes, cod_payment,
	partial_payment_cents, partial_payment_state, partial_payment_date,
	final_payment_cents, final_payment_state, final_payment_date,
	transport_state, transport_customer_fee_cents, transport_operator_fee_cents,
	transport_accepted_fee_cents, transport_last_proposer, transport_last_proposal_time,
	stock_released, version, created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.RentalOrder) error {
	items, err := json.Marshal(o.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	var tState, tProposer sql.NullString
	var tCustFee, tOpFee, tAccFee sql.NullInt64
	var tProposalTime sql.NullTime
	if o.Transport != nil {
		tState = sql.NullString{String: string(o.Transport.State), Valid: true}
		tCustFee = sql.NullInt64{Int64: o.Transport.CustomerProposedFeeCents, Valid: true}
		tOpFee = sql.NullInt64{Int64: o.Transport.OperatorProposedFeeCents, Valid: true}
		tAccFee = sql.NullInt64{Int64: o.Transport.AcceptedFeeCents, Valid: true}
		if o.Transport.LastProposer != "" {
			tProposer = sql.NullString{String: string(o.Transport.LastProposer), Valid: true}
		}
		if o.Transport.LastProposalTime != nil {
			tProposalTime = sql.NullTime{Time: *o.Transport.LastProposalTime, Valid: true}
		}
	}

	now := time.Now()
	o.Version = 1
	o.CreatedOn = now
	o.UpdatedOn = now

	query := `INSERT INTO orders (customer_id, customer_name, customer_email, line_items, status, total_cents,
		delivery_address, start_date, end_date, notes, cod_payment,
		partial_payment_cents, partial_payment_state, final_payment_cents, final_payment_state,
		transport_state, transport_customer_fee_cents, transport_operator_fee_cents,
		transport_accepted_fee_cents, transport_last_proposer, transport_last_proposal_time,
		stock_released, version, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		o.CustomerID, o.CustomerName, o.CustomerEmail, items, o.Status, o.TotalCents,
		o.DeliveryAddress, o.StartDate, o.EndDate, o.Notes, o.CODPayment,
		o.PartialPaymentCents, o.PartialPaymentState, o.FinalPaymentCents, o.FinalPaymentState,
		tState, tCustFee, tOpFee, tAccFee, tProposer, tProposalTime,
		o.StockReleased, o.Version, o.CreatedOn, o.UpdatedOn,
	).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	return o, err
}

// Update writes the full mutable state of the order, guarded by the version
// the caller read. A stale version matches zero rows and surfaces
// ErrOptimisticConflict; the caller re-reads and retries.
func (r *orderRepository) Update(ctx context.Context, o *domain.RentalOrder) error {
	items, err := json.Marshal(o.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	var tState, tProposer sql.NullString
	var tCustFee, tOpFee, tAccFee sql.NullInt64
	var tProposalTime sql.NullTime
	if o.Transport != nil {
		tState = sql.NullString{String: string(o.Transport.State), Valid: true}
		tCustFee = sql.NullInt64{Int64: o.Transport.CustomerProposedFeeCents, Valid: true}
		tOpFee = sql.NullInt64{Int64: o.Transport.OperatorProposedFeeCents, Valid: true}
		tAccFee = sql.NullInt64{Int64: o.Transport.AcceptedFeeCents, Valid: true}
		if o.Transport.LastProposer != "" {
			tProposer = sql.NullString{String: string(o.Transport.LastProposer), Valid: true}
		}
		if o.Transport.LastProposalTime != nil {
			tProposalTime = sql.NullTime{Time: *o.Transport.LastProposalTime, Valid: true}
		}
	}

	query := `UPDATE orders SET line_items=$1, status=$2, total_cents=$3,
		delivery_address=$4, notes=$5,
		partial_payment_cents=$6, partial_payment_state=$7, partial_payment_date=$8,
		final_payment_cents=$9, final_payment_state=$10, final_payment_date=$11,
		transport_state=$12, transport_customer_fee_cents=$13, transport_operator_fee_cents=$14,
		transport_accepted_fee_cents=$15, transport_last_proposer=$16, transport_last_proposal_time=$17,
		stock_released=$18, version=version+1, updated_on=$19
		WHERE id=$20 AND version=$21`
	res, err := r.db.ExecContext(ctx, query,
		items, o.Status, o.TotalCents,
		o.DeliveryAddress, o.Notes,
		o.PartialPaymentCents, o.PartialPaymentState, o.PartialPaymentDate,
		o.FinalPaymentCents, o.FinalPaymentState, o.FinalPaymentDate,
		tState, tCustFee, tOpFee, tAccFee, tProposer, tProposalTime,
		o.StockReleased, time.Now(), o.ID, o.Version)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, o.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrderNotFound
		}
		return domain.ErrOptimisticConflict
	}
	o.Version++
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return r.list(ctx, `customer_id = $1`, []interface{}{customerID}, status, page, pageSize)
}

func (r *orderRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return r.list(ctx, `TRUE`, nil, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, where string, args []interface{}, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where
	argIdx := len(args) + 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.RentalOrder, error) {
	return r.listAll(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 AND created_on < $2`,
		domain.OrderStatusPending, olderThan)
}

func (r *orderRepository) ListAwaitingInstallment(ctx context.Context) ([]domain.RentalOrder, error) {
	return r.listAll(ctx, `SELECT `+orderColumns+` FROM orders
		WHERE cod_payment = FALSE
		AND ((status = $1 AND partial_payment_state = $3) OR (status = $2 AND final_payment_state = $3))`,
		domain.OrderStatusConfirmed, domain.OrderStatusCompleted, domain.PaymentStatePending)
}

func (r *orderRepository) listAll(ctx context.Context, query string, args ...interface{}) ([]domain.RentalOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.RentalOrder, error) {
	o := &domain.RentalOrder{}
	var items []byte
	var partialDate, finalDate, tProposalTime sql.NullTime
	var tState, tProposer sql.NullString
	var tCustFee, tOpFee, tAccFee sql.NullInt64

	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &items, &o.Status, &o.TotalCents,
		&o.DeliveryAddress, &o.StartDate, &o.EndDate, &o.Notes, &o.CODPayment,
		&o.PartialPaymentCents, &o.PartialPaymentState, &partialDate,
		&o.FinalPaymentCents, &o.FinalPaymentState, &finalDate,
		&tState, &tCustFee, &tOpFee, &tAccFee, &tProposer, &tProposalTime,
		&o.StockReleased, &o.Version, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
	}
	if partialDate.Valid {
		o.PartialPaymentDate = &partialDate.Time
	}
	if finalDate.Valid {
		o.FinalPaymentDate = &finalDate.Time
	}
	if tState.Valid {
		o.Transport = &domain.TransportNegotiation{
			State:                    domain.NegotiationState(tState.String),
			CustomerProposedFeeCents: tCustFee.Int64,
			OperatorProposedFeeCents: tOpFee.Int64,
			AcceptedFeeCents:         tAccFee.Int64,
			LastProposer:             domain.ProposerRole(tProposer.String),
		}
		if tProposalTime.Valid {
			o.Transport.LastProposalTime = &tProposalTime.Time
		}
	}
	return o, nil
}
