package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// CustomerRepository implements customer account persistence.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `
	id, name, shop_name, group_id,
	opening_balance::text, opening_side,
	outstanding_balance::text, outstanding_side,
	active, created_at, updated_at
`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		customer                        domain.Customer
		openingAmount, openingSide      string
		outstandingAmount, outstandSide string
	)

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.ShopName,
		&customer.GroupID,
		&openingAmount,
		&openingSide,
		&outstandingAmount,
		&outstandSide,
		&customer.Active,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customer.OpeningBalance, err = scanBalance(openingAmount, openingSide); err != nil {
		return nil, err
	}
	if customer.OutstandingBalance, err = scanBalance(outstandingAmount, outstandSide); err != nil {
		return nil, err
	}

	return &customer, nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, err
}

// FindByName retrieves an active customer by normalized name or shop name.
func (r *CustomerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE active AND (LOWER(TRIM(name)) = $1 OR LOWER(TRIM(shop_name)) = $1)
		LIMIT 1
	`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, err
}

// ListActive retrieves all active customers.
func (r *CustomerRepository) ListActive(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE active ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

// UpdateOutstanding writes a customer's outstanding balance.
func (r *CustomerRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	query := `
		UPDATE customers
		SET outstanding_balance = $2, outstanding_side = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, balance.Amount, string(balance.Side), updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
