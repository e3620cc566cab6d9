package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/logger"
)

// SettingsUseCase manages the singleton business settings row.
type SettingsUseCase struct {
	settings repository.SettingsRepository
	activity repository.ActivityLogRepository
	log      *logger.Logger
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(settings repository.SettingsRepository, activity repository.ActivityLogRepository, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, activity: activity, log: log}
}

// Get returns the current settings, falling back to defaults when the row has
// never been saved.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings()
	}
	return toSettingsResponse(settings), nil
}

// Update validates and saves the settings.
func (uc *SettingsUseCase) Update(ctx context.Context, userID string, in *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, fmt.Errorf("%w: business name is required", domain.ErrInvalidInput)
	}
	if in.TaxPercentage.IsNegative() || in.ServiceChargePercentage.IsNegative() {
		return nil, fmt.Errorf("%w: percentages cannot be negative", domain.ErrInvalidInput)
	}
	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if _, err := currency.ParseISO(code); err != nil {
		return nil, fmt.Errorf("%w: unknown currency code %q", domain.ErrInvalidInput, in.CurrencyCode)
	}

	current, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = entity.DefaultSettings()
		current.ID = uuid.New().String()
	}

	current.BusinessName = strings.TrimSpace(in.BusinessName)
	current.Address = in.Address
	current.Contact = in.Contact
	current.TaxPercentage = in.TaxPercentage
	current.ServiceChargePercentage = in.ServiceChargePercentage
	current.CurrencyCode = code
	current.CurrencySymbol = in.CurrencySymbol

	if err := uc.settings.Upsert(current); err != nil {
		return nil, err
	}

	err = uc.activity.Create(&entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: entity.ActivityUpdateSettings,
		Description:  "Updated business settings",
		EntityType:   "Settings",
		EntityID:     current.ID,
		Timestamp:    time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("activity log write failed")
	}
	return toSettingsResponse(current), nil
}

func toSettingsResponse(s *entity.BusinessSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		BusinessName:            s.BusinessName,
		Address:                 s.Address,
		Contact:                 s.Contact,
		TaxPercentage:           s.TaxPercentage,
		ServiceChargePercentage: s.ServiceChargePercentage,
		CurrencyCode:            s.CurrencyCode,
		CurrencySymbol:          s.CurrencySymbol,
	}
}
