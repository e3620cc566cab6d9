package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

// ReportUseCase is the aggregation engine: stateless, read-only rollups over
// the sale ledger and the product catalogue. Every report runs against one
// snapshot so its numbers are mutually consistent.
type ReportUseCase struct {
	snapshot SnapshotRunner
}

// NewReportUseCase builds the use case.
func NewReportUseCase(snapshot SnapshotRunner) *ReportUseCase {
	return &ReportUseCase{snapshot: snapshot}
}

// Summary computes the headline metrics for a window: revenue, transaction
// counts, discount/tax/service-charge sums, and estimated cost and profit.
func (uc *ReportUseCase) Summary(ctx context.Context, req dto.ReportRequest) (*dto.SalesSummaryDTO, error) {
	w, err := ResolveWindow(req.ReportType, req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, err
	}

	var (
		totals  *repository.SalesTotals
		revenue decimal.Decimal
		cost    decimal.Decimal
	)
	err = uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		totals, err = r.SalesTotals(ctx, w.Start, w.QueryEnd())
		if err != nil {
			return err
		}
		revenue, cost, err = r.CostEstimate(ctx, w.Start, w.QueryEnd())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report summary: %w", err)
	}

	profit := revenue.Sub(cost)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(hundred).Round(2)
	}

	return &dto.SalesSummaryDTO{
		Period:             periodDTO(w),
		TotalSales:         totals.GrandTotal,
		TotalTransactions:  totals.Transactions,
		TotalDiscount:      totals.Discount,
		TotalTax:           totals.Tax,
		TotalServiceCharge: totals.ServiceCharge,
		TotalRevenue:       revenue,
		TotalCost:          cost.Round(2),
		TotalProfit:        profit.Round(2),
		ProfitMargin:       margin,
	}, nil
}

// TopProducts returns the best sellers of the window ranked by quantity sold,
// ties kept in stable group order.
func (uc *ReportUseCase) TopProducts(ctx context.Context, req dto.ReportRequest, limit int) ([]dto.TopProductDTO, error) {
	w, err := ResolveWindow(req.ReportType, req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}

	var rows []repository.ProductSalesRow
	err = uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		rows, err = r.TopProducts(ctx, w.Start, w.QueryEnd(), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report top products: %w", err)
	}

	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
		})
	}
	return out, nil
}

// PaymentMethods returns the per-method breakdown of the window, descending
// by total. Methods are matched exactly as stored.
func (uc *ReportUseCase) PaymentMethods(ctx context.Context, req dto.ReportRequest) ([]dto.PaymentMethodDTO, error) {
	w, err := ResolveWindow(req.ReportType, req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, err
	}

	var rows []repository.PaymentMethodRow
	err = uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		rows, err = r.PaymentMethods(ctx, w.Start, w.QueryEnd())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report payment methods: %w", err)
	}

	out := make([]dto.PaymentMethodDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PaymentMethodDTO{Method: row.Method, Count: row.Count, Total: row.Total})
	}
	return out, nil
}

// DailyTrend returns one point per calendar day in the window, zero-filled.
func (uc *ReportUseCase) DailyTrend(ctx context.Context, req dto.ReportRequest) ([]dto.TrendPointDTO, error) {
	w, err := ResolveWindow(req.ReportType, req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, err
	}

	var rows []repository.DailyRevenueRow
	err = uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		rows, err = r.DailyRevenue(ctx, w.Start, w.QueryEnd())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report daily trend: %w", err)
	}
	return FillDailyTrend(w, rows), nil
}

// StockStatus classifies the active catalogue and totals its retail value.
func (uc *ReportUseCase) StockStatus(ctx context.Context) (*dto.StockStatusDTO, error) {
	var products []*entity.Product
	err := uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		var err error
		products, err = r.ActiveProducts(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report stock status: %w", err)
	}
	return BuildStockStatus(products), nil
}

// BuildStockStatus is the pure classification over a product snapshot:
// OutOfStock (0), LowStock (0 < stock <= threshold), InStock otherwise.
// Total stock value sums price * stock over the whole set.
func BuildStockStatus(products []*entity.Product) *dto.StockStatusDTO {
	out := &dto.StockStatusDTO{
		TotalProducts:   len(products),
		TotalStockValue: decimal.Zero,
		LowStockItems:   []dto.StockProductDTO{},
		OutOfStockItems: []dto.StockProductDTO{},
	}
	for _, p := range products {
		out.TotalStockValue = out.TotalStockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		switch p.StockStatus() {
		case entity.StockStatusOut:
			out.OutOfStock++
			out.OutOfStockItems = append(out.OutOfStockItems, stockProductDTO(p))
		case entity.StockStatusLow:
			out.LowStock++
			out.LowStockItems = append(out.LowStockItems, stockProductDTO(p))
		default:
			out.InStock++
		}
	}
	return out
}

func stockProductDTO(p *entity.Product) dto.StockProductDTO {
	return dto.StockProductDTO{ID: p.ID, Name: p.Name, Stock: p.Stock, Threshold: p.LowStockThreshold}
}

func periodDTO(w Window) dto.PeriodDTO {
	return dto.PeriodDTO{
		StartDate: w.Start.Format(dateLayout),
		EndDate:   w.End.Format(dateLayout),
	}
}
