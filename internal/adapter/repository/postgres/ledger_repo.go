package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// LedgerRepository implements ledger account persistence.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const ledgerColumns = `
	id, name, slug, group_id,
	opening_balance::text, opening_side,
	outstanding_balance::text, outstanding_side,
	active, created_at, updated_at
`

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var (
		ledger                          domain.Ledger
		openingAmount, openingSide      string
		outstandingAmount, outstandSide string
	)

	err := row.Scan(
		&ledger.ID,
		&ledger.Name,
		&ledger.Slug,
		&ledger.GroupID,
		&openingAmount,
		&openingSide,
		&outstandingAmount,
		&outstandSide,
		&ledger.Active,
		&ledger.CreatedAt,
		&ledger.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ledger.OpeningBalance, err = scanBalance(openingAmount, openingSide); err != nil {
		return nil, err
	}
	if ledger.OutstandingBalance, err = scanBalance(outstandingAmount, outstandSide); err != nil {
		return nil, err
	}

	return &ledger, nil
}

// GetByID retrieves a ledger by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE id = $1`

	ledger, err := scanLedger(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLedgerNotFound
	}
	return ledger, err
}

// FindByNameOrSlug retrieves an active ledger by normalized name or slug.
func (r *LedgerRepository) FindByNameOrSlug(ctx context.Context, name string) (*domain.Ledger, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledgers
		WHERE active AND (LOWER(TRIM(name)) = $1 OR LOWER(TRIM(slug)) = $1)
		LIMIT 1
	`

	ledger, err := scanLedger(r.pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLedgerNotFound
	}
	return ledger, err
}

// ListActive retrieves all active ledgers.
func (r *LedgerRepository) ListActive(ctx context.Context) ([]*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE active ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []*domain.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	return ledgers, rows.Err()
}

// UpdateOutstanding writes a ledger's outstanding balance.
func (r *LedgerRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	query := `
		UPDATE ledgers
		SET outstanding_balance = $2, outstanding_side = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, balance.Amount, string(balance.Side), updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLedgerNotFound
	}
	return nil
}
