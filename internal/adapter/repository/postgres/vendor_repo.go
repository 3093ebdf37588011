package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// VendorRepository implements vendor account persistence.
type VendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

const vendorColumns = `
	id, name, group_id, linked_ledger_id,
	opening_balance::text, opening_side,
	outstanding_balance::text, outstanding_side,
	active, created_at, updated_at
`

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var (
		vendor                          domain.Vendor
		openingAmount, openingSide      string
		outstandingAmount, outstandSide string
	)

	err := row.Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.GroupID,
		&vendor.LinkedLedgerID,
		&openingAmount,
		&openingSide,
		&outstandingAmount,
		&outstandSide,
		&vendor.Active,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if vendor.OpeningBalance, err = scanBalance(openingAmount, openingSide); err != nil {
		return nil, err
	}
	if vendor.OutstandingBalance, err = scanBalance(outstandingAmount, outstandSide); err != nil {
		return nil, err
	}

	return &vendor, nil
}

// GetByID retrieves a vendor by ID.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, err
}

// FindByName retrieves an active vendor by normalized name.
func (r *VendorRepository) FindByName(ctx context.Context, name string) (*domain.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE active AND LOWER(TRIM(name)) = $1
		LIMIT 1
	`

	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, err
}

// ListActive retrieves all active vendors.
func (r *VendorRepository) ListActive(ctx context.Context) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE active ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

// UpdateOutstanding writes a vendor's outstanding balance.
func (r *VendorRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	query := `
		UPDATE vendors
		SET outstanding_balance = $2, outstanding_side = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, balance.Amount, string(balance.Side), updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
