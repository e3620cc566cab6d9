package dto

import "github.com/shopspring/decimal"

// ReportRequest selects the aggregation window. Dates are "2006-01-02"; when
// absent they are derived from ReportType (daily, weekly, monthly, yearly,
// custom). A start after end is swapped, not rejected.
type ReportRequest struct {
	ReportType string `query:"reportType"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// PeriodDTO echoes the resolved window back to the caller.
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SalesSummaryDTO is the headline metrics block of a report.
type SalesSummaryDTO struct {
	Period             PeriodDTO       `json:"period"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalTransactions  int             `json:"totalTransactions"`
	TotalDiscount      decimal.Decimal `json:"totalDiscount"`
	TotalTax           decimal.Decimal `json:"totalTax"`
	TotalServiceCharge decimal.Decimal `json:"totalServiceCharge"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalCost          decimal.Decimal `json:"totalCost"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	ProfitMargin       decimal.Decimal `json:"profitMargin"`
}

// TopProductDTO is one row of the best sellers ranking.
type TopProductDTO struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// PaymentMethodDTO is one payment method's share of the window.
type PaymentMethodDTO struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// TrendPointDTO is one calendar day of the daily trend. Days without sales
// appear with zero totals.
type TrendPointDTO struct {
	Date         string          `json:"date"` // 2006-01-02
	Total        decimal.Decimal `json:"total"`
	Transactions int             `json:"transactions"`
}

// StockStatusDTO classifies the active catalogue by stock level.
type StockStatusDTO struct {
	TotalProducts   int                `json:"totalProducts"`
	InStock         int                `json:"inStock"`
	LowStock        int                `json:"lowStock"`
	OutOfStock      int                `json:"outOfStock"`
	TotalStockValue decimal.Decimal    `json:"totalStockValue"`
	LowStockItems   []StockProductDTO  `json:"lowStockItems"`
	OutOfStockItems []StockProductDTO  `json:"outOfStockItems"`
}

// StockProductDTO is a product row inside the stock report.
type StockProductDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}
