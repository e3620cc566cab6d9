package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/application/reports"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// Friday 15 March 2024, mid-afternoon.
var refNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindow_Daily(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportDaily, "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 15), w.Start)
	assert.Equal(t, day(2024, 3, 15), w.End)

	// Empty report type defaults to daily.
	w, err = reports.ResolveWindow("", "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 15), w.Start)
}

func TestResolveWindow_WeeklyStartsSunday(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportWeekly, "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 10), w.Start) // Sunday before the 15th
	assert.Equal(t, day(2024, 3, 16), w.End)
	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Equal(t, 7, w.Days())
}

func TestResolveWindow_Monthly(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportMonthly, "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 1), w.Start)
	assert.Equal(t, day(2024, 3, 31), w.End)
}

func TestResolveWindow_Yearly(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportYearly, "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 1), w.Start)
	assert.Equal(t, day(2024, 12, 31), w.End)
}

func TestResolveWindow_CustomDefaultsToLast30Days(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportCustom, "", "", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 14), w.Start)
	assert.Equal(t, day(2024, 3, 15), w.End)
	assert.Equal(t, 31, w.Days())
}

func TestResolveWindow_ExplicitDatesWinOverPreset(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportYearly, "2024-03-01", "2024-03-07", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 1), w.Start)
	assert.Equal(t, day(2024, 3, 7), w.End)
}

func TestResolveWindow_SwapsReversedDates(t *testing.T) {
	w, err := reports.ResolveWindow(reports.ReportCustom, "2024-03-07", "2024-03-01", refNow)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 1), w.Start)
	assert.Equal(t, day(2024, 3, 7), w.End)
}

func TestResolveWindow_Invalid(t *testing.T) {
	_, err := reports.ResolveWindow("hourly", "", "", refNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = reports.ResolveWindow(reports.ReportCustom, "01/03/2024", "2024-03-07", refNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = reports.ResolveWindow(reports.ReportCustom, "2024-03-01", "garbage", refNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWindow_QueryEndAndPrevious(t *testing.T) {
	w := reports.Window{Start: day(2024, 3, 10), End: day(2024, 3, 16)}
	assert.Equal(t, day(2024, 3, 17), w.QueryEnd())

	prev := w.Previous()
	assert.Equal(t, day(2024, 3, 3), prev.Start)
	assert.Equal(t, day(2024, 3, 9), prev.End)
	assert.Equal(t, w.Days(), prev.Days())
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		previous string
		want     string
	}{
		{"growth", "150", "100", "50"},
		{"decline", "50", "100", "-50"},
		{"flat", "100", "100", "0"},
		{"from zero", "42", "0", "100"},
		{"zero over zero", "0", "0", "0"},
		{"fractional", "105.50", "100", "5.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reports.PercentChange(dec(tc.current), dec(tc.previous))
			assert.True(t, got.Equal(dec(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestFillDailyTrend_ZeroFillsGaps(t *testing.T) {
	w := reports.Window{Start: day(2024, 3, 1), End: day(2024, 3, 5)}
	rows := []repository.DailyRevenueRow{
		{Day: day(2024, 3, 2), Total: dec("120.50"), Transactions: 4},
		{Day: day(2024, 3, 5), Total: dec("75.00"), Transactions: 2},
	}

	points := reports.FillDailyTrend(w, rows)
	require.Len(t, points, 5)

	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.True(t, points[0].Total.IsZero())
	assert.Zero(t, points[0].Transactions)

	assert.Equal(t, "2024-03-02", points[1].Date)
	assert.True(t, points[1].Total.Equal(dec("120.50")))
	assert.Equal(t, 4, points[1].Transactions)

	assert.True(t, points[2].Total.IsZero())
	assert.True(t, points[3].Total.IsZero())

	assert.Equal(t, "2024-03-05", points[4].Date)
	assert.True(t, points[4].Total.Equal(dec("75.00")))
}

func TestFillDailyTrend_SingleDay(t *testing.T) {
	w := reports.Window{Start: day(2024, 3, 15), End: day(2024, 3, 15)}
	points := reports.FillDailyTrend(w, nil)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-15", points[0].Date)
	assert.True(t, points[0].Total.IsZero())
}
