package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// VoucherRepository implements voucher persistence. Party and journal lines
// are stored as JSONB documents; they are written once and read whole, never
// queried into.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

const voucherColumns = `
	id, number, type, date, ledger_id, parties, entries,
	total_debit::text, total_credit::text,
	narration, active, created_at, updated_at
`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var (
		voucher                 domain.Voucher
		ledgerID                *string
		totalDebit, totalCredit string
	)

	err := row.Scan(
		&voucher.ID,
		&voucher.Number,
		&voucher.Type,
		&voucher.Date,
		&ledgerID,
		&voucher.Parties,
		&voucher.Entries,
		&totalDebit,
		&totalCredit,
		&voucher.Narration,
		&voucher.Active,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ledgerID != nil {
		voucher.LedgerID = *ledgerID
	}
	if voucher.TotalDebit, err = decimal.NewFromString(totalDebit); err != nil {
		return nil, err
	}
	if voucher.TotalCredit, err = decimal.NewFromString(totalCredit); err != nil {
		return nil, err
	}

	return &voucher, nil
}

// Create inserts a voucher inside the given transaction.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vouchers (
			id, number, type, date, ledger_id, parties, entries,
			total_debit, total_credit, narration, active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var ledgerID *string
	if voucher.LedgerID != "" {
		ledgerID = &voucher.LedgerID
	}

	_, err = pgxTx.Exec(ctx, query,
		voucher.ID,
		voucher.Number,
		string(voucher.Type),
		voucher.Date,
		ledgerID,
		voucher.Parties,
		voucher.Entries,
		voucher.TotalDebit,
		voucher.TotalCredit,
		voucher.Narration,
		voucher.Active,
		voucher.CreatedAt,
		voucher.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicateVoucher
	}

	return err
}

// GetByNumber retrieves a voucher by its human-readable number.
func (r *VoucherRepository) GetByNumber(ctx context.Context, number int64) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE number = $1`

	voucher, err := scanVoucher(r.pool.QueryRow(ctx, query, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVoucherNotFound
	}
	return voucher, err
}

// ListActiveBefore retrieves all active vouchers dated on or before asOf.
func (r *VoucherRepository) ListActiveBefore(ctx context.Context, asOf time.Time) ([]*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE active AND date <= $1 ORDER BY number`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, rows.Err()
}

// Deactivate soft-deletes a voucher. The record stays in place for replay
// history; it just stops contributing.
func (r *VoucherRepository) Deactivate(ctx context.Context, number int64, updatedAt time.Time) error {
	query := `UPDATE vouchers SET active = false, updated_at = $2 WHERE number = $1`

	tag, err := r.pool.Exec(ctx, query, number, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}
