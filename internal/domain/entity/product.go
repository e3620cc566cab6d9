package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item. Stock is integer units and is only reduced by
// the checkout engine; restocks go through the same inventory store path.
type Product struct {
	ID                string
	Name              string
	Description       string
	Barcode           string
	Price             decimal.Decimal // selling price
	CostPrice         decimal.Decimal // zero means unknown; reports estimate it
	Stock             int
	LowStockThreshold int
	Unit              string
	IsActive          bool
	CategoryID        string
	SupplierID        string // optional, empty when unassigned
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether the product is at or below its reorder level.
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}

// ProfitMargin returns the margin percentage, zero when either price is unset.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.Price.IsPositive() && p.CostPrice.IsPositive() {
		return p.Price.Sub(p.CostPrice).Div(p.Price).Mul(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// Stock status labels used by reports and exports.
const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"
)

// StockStatus classifies the product by its current stock level.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock <= p.LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
