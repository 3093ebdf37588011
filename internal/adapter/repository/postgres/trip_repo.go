package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// TripRepository implements trip record persistence. Sales and purchases
// live in JSONB columns, read whole by the replay path.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// ListBefore retrieves all trips dated on or before asOf.
func (r *TripRepository) ListBefore(ctx context.Context, asOf time.Time) ([]*domain.Trip, error) {
	query := `SELECT id, date, sales, purchases, created_at FROM trips WHERE date <= $1 ORDER BY date`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(&trip.ID, &trip.Date, &trip.Sales, &trip.Purchases, &trip.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}
