package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/domain/entity"
)

// SalesTotals aggregates the sale headers in a window.
type SalesTotals struct {
	Transactions  int
	GrandTotal    decimal.Decimal
	SubTotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	ServiceCharge decimal.Decimal
}

// ProductSalesRow is one product's sales inside a window.
type ProductSalesRow struct {
	ProductID    string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
	Transactions int
}

// PaymentMethodRow is one payment method's share of a window.
type PaymentMethodRow struct {
	Method string
	Count  int
	Total  decimal.Decimal
}

// DailyRevenueRow is one calendar day's revenue. Days without sales are not
// returned; the aggregation engine zero-fills them.
type DailyRevenueRow struct {
	Day          time.Time
	Total        decimal.Decimal
	Transactions int
}

// SalesExportRow is one sale flattened for the sales export.
type SalesExportRow struct {
	ReceiptNumber   string
	Date            time.Time
	CustomerContact string
	ItemsCount      int
	ItemsQuantity   int
	SubTotal        decimal.Decimal
	Discount        decimal.Decimal
	Tax             decimal.Decimal
	ServiceCharge   decimal.Decimal
	GrandTotal      decimal.Decimal
	PaymentMethod   string
	Cashier         string
}

// InventoryExportRow is one active product flattened for the inventory export.
// Stock value, margin and status are derived in the aggregation engine.
type InventoryExportRow struct {
	ID                string
	Name              string
	Barcode           string
	Category          string
	Supplier          string
	CostPrice         decimal.Decimal
	Price             decimal.Decimal
	Stock             int
	LowStockThreshold int
}

// ReportRepository is the read-only port the aggregation engine scans.
// Implementations bound to a snapshot transaction guarantee that all methods
// observe the same point in time.
type ReportRepository interface {
	SalesTotals(ctx context.Context, start, end time.Time) (*SalesTotals, error)
	RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error)
	PaymentMethods(ctx context.Context, start, end time.Time) ([]PaymentMethodRow, error)
	DailyRevenue(ctx context.Context, start, end time.Time) ([]DailyRevenueRow, error)
	// CostEstimate returns window revenue (sum of line totals) and estimated
	// cost, where lines whose product has no recorded cost price are costed
	// at 60% of their sale unit price.
	CostEstimate(ctx context.Context, start, end time.Time) (revenue, cost decimal.Decimal, err error)
	ActiveProducts(ctx context.Context) ([]*entity.Product, error)
	RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
	SalesExport(ctx context.Context, start, end time.Time) ([]SalesExportRow, error)
	InventoryExport(ctx context.Context) ([]InventoryExportRow, error)
}
