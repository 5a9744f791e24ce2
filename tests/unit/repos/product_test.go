package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/repository/postgres"
)

func TestProductRepository_ReserveStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET available = available - \\$2").
			WithArgs(int32(10), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ReserveStock(ctx, 10, 2))
	})

	t.Run("Insufficient stock", func(t *testing.T) {
		// The conditional update matches nothing, so the repo reads the
		// actual availability to build the error.
		mock.ExpectExec("UPDATE products SET available = available - \\$2").
			WithArgs(int32(10), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT available FROM products WHERE id = \\$1").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(3))

		err := repo.ReserveStock(ctx, 10, 5)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(3), stockErr.Available)
		assert.Equal(t, int32(5), stockErr.Requested)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET available = available - \\$2").
			WithArgs(int32(404), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT available FROM products WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"available"}))

		err := repo.ReserveStock(ctx, 404, 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ReleaseStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE products SET available = available \\+ \\$2").
		WithArgs(int32(10), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ReleaseStock(ctx, 10, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "price_per_day_cents", "condition", "available", "created_on"}).
			AddRow(1, "Sofa", "Three-seater", "living-room", 5000, "GOOD", 4, "2026-01-01T00:00:00Z")

		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1 AND deleted_on IS NULL").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		product, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Sofa", product.Name)
		assert.Equal(t, int64(5000), product.PricePerDayCents)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1 AND deleted_on IS NULL").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
