package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, category, price_per_day_cents, condition, available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.PricePerDayCents, p.Condition, p.Available, time.Now()).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name, description, category, price_per_day_cents, condition, available, created_on
	          FROM products WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDayCents, &p.Condition, &p.Available, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, price_per_day_cents=$4, condition=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.PricePerDayCents, p.Condition, p.ID)
	return err
}

func (r *productRepository) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, name, description, category, price_per_day_cents, condition, available, created_on
	          FROM products WHERE deleted_on IS NULL`
	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDayCents, &p.Condition, &p.Available, &p.CreatedOn); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, count, nil
}

func (r *productRepository) GetAvailable(ctx context.Context, id int32) (int32, error) {
	var available int32
	err := r.db.QueryRowContext(ctx, `SELECT available FROM products WHERE id = $1 AND deleted_on IS NULL`, id).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrProductNotFound
	}
	return available, err
}

// ReserveStock is a single atomic read-modify-write: the conditional update
// commits only when enough stock remains, so two concurrent reservations
// can never both claim the last unit.
func (r *productRepository) ReserveStock(ctx context.Context, productID, quantity int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET available = available - $2 WHERE id = $1 AND deleted_on IS NULL AND available >= $2`,
		productID, quantity)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}

	available, err := r.GetAvailable(ctx, productID)
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{ProductID: productID, Available: available, Requested: quantity}
}

func (r *productRepository) ReleaseStock(ctx context.Context, productID, quantity int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET available = available + $2 WHERE id = $1`,
		productID, quantity)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
