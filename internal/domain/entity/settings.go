package entity

import "github.com/shopspring/decimal"

// BusinessSettings is the singleton row with storefront configuration.
// Tax and service charge percentages are applied by the front end when
// building the cart; the engine validates the resulting totals.
type BusinessSettings struct {
	ID                      string
	BusinessName            string
	Address                 string
	Contact                 string
	TaxPercentage           decimal.Decimal
	ServiceChargePercentage decimal.Decimal
	CurrencyCode            string
	CurrencySymbol          string
}

// DefaultSettings returns the fallback used when the row has not been seeded.
func DefaultSettings() *BusinessSettings {
	return &BusinessSettings{
		BusinessName:            "Stratera POS",
		TaxPercentage:           decimal.Zero,
		ServiceChargePercentage: decimal.Zero,
		CurrencyCode:            "GHS",
		CurrencySymbol:          "₵",
	}
}
