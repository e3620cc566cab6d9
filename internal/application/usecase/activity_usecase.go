package usecase

import (
	"context"
	"time"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// ActivityUseCase reads the audit trail. Entries are written by the other use
// cases; there is no write path here.
type ActivityUseCase struct {
	activity repository.ActivityLogRepository
}

// NewActivityUseCase builds the use case.
func NewActivityUseCase(activity repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{activity: activity}
}

// List pages through the trail, newest first.
func (uc *ActivityUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ActivityLogResponse, error) {
	entries, err := uc.activity.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityLogResponse{
			ID:           e.ID,
			UserID:       e.UserID,
			ActivityType: e.ActivityType,
			Description:  e.Description,
			EntityType:   e.EntityType,
			EntityID:     e.EntityID,
			Timestamp:    e.Timestamp.Format(time.RFC3339),
		})
	}
	return out, nil
}
