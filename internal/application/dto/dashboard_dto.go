package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO is the landing-screen snapshot: today vs yesterday,
// running week/month totals, and stock alerts.
type DashboardSummaryDTO struct {
	TodayRevenue         decimal.Decimal    `json:"todayRevenue"`
	TodayTransactions    int                `json:"todayTransactions"`
	YesterdayRevenue     decimal.Decimal    `json:"yesterdayRevenue"`
	RevenueChangePercent decimal.Decimal    `json:"revenueChangePercent"`
	WeekRevenue          decimal.Decimal    `json:"weekRevenue"`
	MonthRevenue         decimal.Decimal    `json:"monthRevenue"`
	LowStockCount        int                `json:"lowStockCount"`
	OutOfStockCount      int                `json:"outOfStockCount"`
	RecentSales          []RecentSaleDTO    `json:"recentSales"`
}

// RecentSaleDTO is a compact sale row for the dashboard ticker.
type RecentSaleDTO struct {
	SaleID        string          `json:"saleId"`
	ReceiptNumber string          `json:"receiptNumber"`
	Date          string          `json:"date"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	PaymentMethod string          `json:"paymentMethod"`
}
