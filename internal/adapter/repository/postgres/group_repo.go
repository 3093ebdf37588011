package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// GroupRepository implements account group persistence.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// ListAll retrieves every account group.
func (r *GroupRepository) ListAll(ctx context.Context) ([]*domain.Group, error) {
	query := `SELECT id, name, type, parent_id FROM groups ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Type, &group.ParentID); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	return groups, rows.Err()
}
