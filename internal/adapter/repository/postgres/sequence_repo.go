package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepository implements named monotonic counters on a single-row
// upsert. The increment happens inside one statement, so concurrent callers
// serialize on the row lock and never observe the same value.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new sequence repository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// Increment advances the counter and returns the new value, creating the
// counter at 1 if absent.
func (r *SequenceRepository) Increment(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`

	var value int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

// Current returns the last allocated value, or 0 for an unknown counter.
func (r *SequenceRepository) Current(ctx context.Context, name string) (int64, error) {
	query := `SELECT value FROM sequences WHERE name = $1`

	var value int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return value, err
}
