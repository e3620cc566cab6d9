package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/cache"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/logger"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
	recentSalesLimit  = 10
)

// DashboardUseCase assembles the landing-screen summary. The result is cached
// briefly; cache failures degrade to a fresh scan, never to an error.
type DashboardUseCase struct {
	snapshot SnapshotRunner
	cache    cache.Cache
	log      *logger.Logger
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(snapshot SnapshotRunner, c cache.Cache, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{snapshot: snapshot, cache: c, log: log}
}

// Summary returns the dashboard snapshot, serving from cache when fresh.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if raw, err := uc.cache.Get(ctx, dashboardCacheKey); err == nil {
		var cached dto.DashboardSummaryDTO
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	out, err := uc.build(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := uc.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return out, nil
}

// Invalidate drops the cached summary. Called after a checkout commits so the
// next dashboard load reflects the sale.
func (uc *DashboardUseCase) Invalidate(ctx context.Context) {
	if err := uc.cache.Delete(ctx, dashboardCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

func (uc *DashboardUseCase) build(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var (
		todayTotals  *repository.SalesTotals
		yesterdayRev decimal.Decimal
		weekRev      decimal.Decimal
		monthRev     decimal.Decimal
		products     []*entity.Product
		recent       []*entity.Sale
	)
	err := uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		var err error
		if todayTotals, err = r.SalesTotals(ctx, today, tomorrow); err != nil {
			return err
		}
		if yesterdayRev, err = r.RevenueBetween(ctx, yesterday, today); err != nil {
			return err
		}
		if weekRev, err = r.RevenueBetween(ctx, weekStart, tomorrow); err != nil {
			return err
		}
		if monthRev, err = r.RevenueBetween(ctx, monthStart, tomorrow); err != nil {
			return err
		}
		if products, err = r.ActiveProducts(ctx); err != nil {
			return err
		}
		recent, err = r.RecentSales(ctx, recentSalesLimit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	out := &dto.DashboardSummaryDTO{
		TodayRevenue:         todayTotals.GrandTotal,
		TodayTransactions:    todayTotals.Transactions,
		YesterdayRevenue:     yesterdayRev,
		RevenueChangePercent: PercentChange(todayTotals.GrandTotal, yesterdayRev),
		WeekRevenue:          weekRev,
		MonthRevenue:         monthRev,
		RecentSales:          make([]dto.RecentSaleDTO, 0, len(recent)),
	}
	for _, p := range products {
		switch p.StockStatus() {
		case entity.StockStatusOut:
			out.OutOfStockCount++
		case entity.StockStatusLow:
			out.LowStockCount++
		}
	}
	for _, s := range recent {
		out.RecentSales = append(out.RecentSales, dto.RecentSaleDTO{
			SaleID:        s.ID,
			ReceiptNumber: s.ReceiptNumber,
			Date:          s.Date.Format(time.RFC3339),
			GrandTotal:    s.GrandTotal,
			PaymentMethod: s.PaymentMethod,
		})
	}
	return out, nil
}
