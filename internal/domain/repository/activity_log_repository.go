package repository

import "github.com/stratera/pos-api/internal/domain/entity"

// ActivityLogRepository is the append-only audit trail port.
type ActivityLogRepository interface {
	Create(entry *entity.ActivityLogEntry) error
	List(limit, offset int) ([]*entity.ActivityLogEntry, error)
}
