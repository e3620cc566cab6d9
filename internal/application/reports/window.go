package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/repository"

	"github.com/stratera/pos-api/internal/application/dto"
)

// Report type presets.
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportYearly  = "yearly"
	ReportCustom  = "custom"
)

const dateLayout = "2006-01-02"

// Window is an inclusive date range. Start and End are both midnight of
// their respective days in local time.
type Window struct {
	Start time.Time
	End   time.Time
}

// QueryEnd returns the exclusive upper bound for timestamp comparisons:
// midnight of the day after End.
func (w Window) QueryEnd() time.Time {
	return w.End.AddDate(0, 0, 1)
}

// Days returns the number of calendar days covered, at least 1.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Previous returns the window of equal length immediately before this one,
// used for percent-change comparisons.
func (w Window) Previous() Window {
	days := w.Days()
	return Window{
		Start: w.Start.AddDate(0, 0, -days),
		End:   w.Start.AddDate(0, 0, -1),
	}
}

// ResolveWindow derives the date range from a report request. Missing dates
// fall back to the preset for the report type; weekly starts on Sunday. When
// start is after end the two are swapped rather than rejected.
func ResolveWindow(reportType, startStr, endStr string, now time.Time) (Window, error) {
	today := midnight(now)

	var w Window
	if startStr != "" && endStr != "" {
		start, err := time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return Window{}, domain.ErrInvalidInput
		}
		end, err := time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return Window{}, domain.ErrInvalidInput
		}
		w = Window{Start: start, End: end}
	} else {
		switch reportType {
		case ReportWeekly:
			start := today.AddDate(0, 0, -int(today.Weekday()))
			w = Window{Start: start, End: start.AddDate(0, 0, 6)}
		case ReportMonthly:
			start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, now.Location())
			w = Window{Start: start, End: start.AddDate(0, 1, -1)}
		case ReportYearly:
			w = Window{
				Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
				End:   time.Date(today.Year(), 12, 31, 0, 0, 0, 0, now.Location()),
			}
		case ReportCustom:
			w = Window{Start: today.AddDate(0, 0, -30), End: today}
		case ReportDaily, "":
			w = Window{Start: today, End: today}
		default:
			return Window{}, domain.ErrInvalidInput
		}
	}

	if w.Start.After(w.End) {
		w.Start, w.End = w.End, w.Start
	}
	return w, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var hundred = decimal.NewFromInt(100)

// PercentChange computes (current - previous) / previous * 100. A zero
// previous is defined as 100 when current is positive and 0 otherwise, so
// dashboards never divide by zero.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// FillDailyTrend produces one point per calendar day of the window, in
// chronological order, with zero totals on days that had no sales.
func FillDailyTrend(w Window, rows []repository.DailyRevenueRow) []dto.TrendPointDTO {
	byDay := make(map[string]repository.DailyRevenueRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format(dateLayout)] = row
	}

	points := make([]dto.TrendPointDTO, 0, w.Days())
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		point := dto.TrendPointDTO{Date: key, Total: decimal.Zero}
		if row, ok := byDay[key]; ok {
			point.Total = row.Total
			point.Transactions = row.Transactions
		}
		points = append(points, point)
	}
	return points
}
