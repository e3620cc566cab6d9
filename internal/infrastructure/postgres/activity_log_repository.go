package postgres

import (
	"context"
	"fmt"

	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implements the append-only audit trail over PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository builds the adapter. Pass pool or tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create appends one entry. Entries are never updated or deleted.
func (r *ActivityLogRepo) Create(entry *entity.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (id, user_id, activity_type, description, entity_type, entity_id, timestamp)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.ActivityType, entry.Description,
		entry.EntityType, entry.EntityID, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List pages through the trail, newest first.
func (r *ActivityLogRepo) List(limit, offset int) ([]*entity.ActivityLogEntry, error) {
	query := `
		SELECT id, COALESCE(user_id::text, ''), activity_type, description, entity_type, entity_id, timestamp
		FROM activity_logs ORDER BY timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLogEntry
	for rows.Next() {
		var e entity.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActivityType, &e.Description, &e.EntityType, &e.EntityID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
