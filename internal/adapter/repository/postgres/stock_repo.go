package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// StockRepository implements inventory stock movement persistence.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new stock repository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// ListBefore retrieves all stock movements dated on or before asOf.
func (r *StockRepository) ListBefore(ctx context.Context, asOf time.Time) ([]*domain.InventoryStock, error) {
	query := `
		SELECT id, date, type, amount::text, vendor_id, created_at
		FROM inventory_stocks
		WHERE date <= $1
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*domain.InventoryStock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}

	return stocks, rows.Err()
}

func scanStock(row pgx.Row) (*domain.InventoryStock, error) {
	var (
		stock    domain.InventoryStock
		amount   string
		vendorID *string
	)

	if err := row.Scan(&stock.ID, &stock.Date, &stock.Type, &amount, &vendorID, &stock.CreatedAt); err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	stock.Amount = value

	if vendorID != nil {
		stock.VendorID = *vendorID
	}

	return &stock, nil
}
