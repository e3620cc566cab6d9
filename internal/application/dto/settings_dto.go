package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest payload for the business settings screen.
type UpdateSettingsRequest struct {
	BusinessName            string          `json:"businessName"`
	Address                 string          `json:"address"`
	Contact                 string          `json:"contact"`
	TaxPercentage           decimal.Decimal `json:"taxPercentage"`
	ServiceChargePercentage decimal.Decimal `json:"serviceChargePercentage"`
	CurrencyCode            string          `json:"currencyCode"`
	CurrencySymbol          string          `json:"currencySymbol"`
}

// SettingsResponse is the singleton settings row as returned by the API.
type SettingsResponse struct {
	BusinessName            string          `json:"businessName"`
	Address                 string          `json:"address"`
	Contact                 string          `json:"contact"`
	TaxPercentage           decimal.Decimal `json:"taxPercentage"`
	ServiceChargePercentage decimal.Decimal `json:"serviceChargePercentage"`
	CurrencyCode            string          `json:"currencyCode"`
	CurrencySymbol          string          `json:"currencySymbol"`
}
