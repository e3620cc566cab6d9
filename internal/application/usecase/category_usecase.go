package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/logger"
)

// CategoryUseCase manages product categories.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	activity   repository.ActivityLogRepository
	log        *logger.Logger
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(categories repository.CategoryRepository, activity repository.ActivityLogRepository, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, activity: activity, log: log}
}

func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}

	uc.recordActivity(userID, entity.ActivityCreateCategory,
		fmt.Sprintf("Created category '%s'", category.Name), category.ID)
	return toCategoryResponse(category), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Description = in.Description
	category.UpdatedAt = time.Now()
	if err := uc.categories.Update(category); err != nil {
		return nil, err
	}

	uc.recordActivity(userID, entity.ActivityUpdateCategory,
		fmt.Sprintf("Updated category '%s'", category.Name), category.ID)
	return toCategoryResponse(category), nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if err := uc.categories.Delete(id); err != nil {
		return err
	}

	uc.recordActivity(userID, entity.ActivityDeleteCategory,
		fmt.Sprintf("Deleted category '%s'", category.Name), id)
	return nil
}

func (uc *CategoryUseCase) recordActivity(userID, activityType, description, entityID string) {
	err := uc.activity.Create(&entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		EntityType:   "Category",
		EntityID:     entityID,
		Timestamp:    time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("activity", activityType).Msg("activity log write failed")
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}
