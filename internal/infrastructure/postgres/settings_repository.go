package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implements the singleton settings port over PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository builds the adapter. Pass pool or tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get returns the settings row, or nil when it has never been saved.
func (r *SettingsRepo) Get() (*entity.BusinessSettings, error) {
	query := `
		SELECT id, business_name, address, contact, tax_percentage, service_charge_percentage, currency_code, currency_symbol
		FROM business_settings LIMIT 1`
	var s entity.BusinessSettings
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.ID, &s.BusinessName, &s.Address, &s.Contact,
		&s.TaxPercentage, &s.ServiceChargePercentage, &s.CurrencyCode, &s.CurrencySymbol,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the singleton row.
func (r *SettingsRepo) Upsert(settings *entity.BusinessSettings) error {
	query := `
		INSERT INTO business_settings (id, business_name, address, contact, tax_percentage, service_charge_percentage, currency_code, currency_symbol)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET business_name = EXCLUDED.business_name, address = EXCLUDED.address,
		              contact = EXCLUDED.contact, tax_percentage = EXCLUDED.tax_percentage,
		              service_charge_percentage = EXCLUDED.service_charge_percentage,
		              currency_code = EXCLUDED.currency_code, currency_symbol = EXCLUDED.currency_symbol`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.BusinessName, settings.Address, settings.Contact,
		settings.TaxPercentage, settings.ServiceChargePercentage,
		settings.CurrencyCode, settings.CurrencySymbol,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
