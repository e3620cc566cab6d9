package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestSalesExportRecord(t *testing.T) {
	row := repository.SalesExportRow{
		ReceiptNumber:   "RCP-20240315-4821",
		Date:            time.Date(2024, 3, 15, 14, 5, 9, 0, time.UTC),
		CustomerContact: "024-555-0199",
		ItemsCount:      2,
		ItemsQuantity:   5,
		SubTotal:        d("45.00"),
		Discount:        d("5.00"),
		Tax:             d("2.00"),
		ServiceCharge:   d("1.50"),
		GrandTotal:      d("43.50"),
		PaymentMethod:   "Mobile Money",
		Cashier:         "ama",
	}

	rec := salesExportRecord(row)
	require.Len(t, rec, len(salesExportHeader))
	assert.Equal(t, []string{
		"RCP-20240315-4821", "2024-03-15", "14:05:09", "024-555-0199",
		"2", "5", "45.00", "5.00", "2.00", "1.50", "43.50",
		"Mobile Money", "ama",
	}, rec)
}

func TestSalesExportRecord_WalkInFallback(t *testing.T) {
	rec := salesExportRecord(repository.SalesExportRow{
		ReceiptNumber: "RCP-20240315-1000",
		Date:          time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, "Walk-in", rec[3])
}

func TestInventoryExportRecord(t *testing.T) {
	row := repository.InventoryExportRow{
		ID:                "p1",
		Name:              "Rice 5kg",
		Barcode:           "6001234567890",
		Category:          "Groceries",
		Supplier:          "Accra Wholesale",
		CostPrice:         d("30.00"),
		Price:             d("50.00"),
		Stock:             12,
		LowStockThreshold: 5,
	}

	rec := inventoryExportRecord(row)
	require.Len(t, rec, len(inventoryExportHeader))
	assert.Equal(t, []string{
		"p1", "Rice 5kg", "6001234567890", "Groceries", "Accra Wholesale",
		"30.00", "50.00", "12", "5",
		"600.00",  // 50 x 12
		"40.00%",  // (50 - 30) / 50
		entity.StockStatusIn,
	}, rec)
}

func TestInventoryExportRecord_EdgeStatuses(t *testing.T) {
	low := inventoryExportRecord(repository.InventoryExportRow{
		ID: "p2", Price: d("10.00"), Stock: 3, LowStockThreshold: 5,
	})
	assert.Equal(t, entity.StockStatusLow, low[11])

	out := inventoryExportRecord(repository.InventoryExportRow{
		ID: "p3", Price: d("10.00"), Stock: 0, LowStockThreshold: 5,
	})
	assert.Equal(t, entity.StockStatusOut, out[11])
	assert.Equal(t, "0.00", out[9])

	// Zero price yields a zero margin rather than a division error.
	free := inventoryExportRecord(repository.InventoryExportRow{
		ID: "p4", Stock: 1, LowStockThreshold: 5,
	})
	assert.Equal(t, "0.00%", free[10])
}

func TestBuildStockStatus(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Rice 5kg", Price: d("50.00"), Stock: 12, LowStockThreshold: 5},
		{ID: "p2", Name: "Cooking Oil", Price: d("10.00"), Stock: 3, LowStockThreshold: 5},
		{ID: "p3", Name: "Sugar 1kg", Price: d("8.00"), Stock: 0, LowStockThreshold: 5},
		{ID: "p4", Name: "Salt", Price: d("2.00"), Stock: 40, LowStockThreshold: 10},
	}

	st := BuildStockStatus(products)
	assert.Equal(t, 4, st.TotalProducts)
	assert.Equal(t, 2, st.InStock)
	assert.Equal(t, 1, st.LowStock)
	assert.Equal(t, 1, st.OutOfStock)
	// 50*12 + 10*3 + 8*0 + 2*40 = 710
	assert.True(t, st.TotalStockValue.Equal(d("710")), "got %s", st.TotalStockValue)

	require.Len(t, st.LowStockItems, 1)
	assert.Equal(t, "p2", st.LowStockItems[0].ID)
	assert.Equal(t, 3, st.LowStockItems[0].Stock)
	assert.Equal(t, 5, st.LowStockItems[0].Threshold)

	require.Len(t, st.OutOfStockItems, 1)
	assert.Equal(t, "p3", st.OutOfStockItems[0].ID)
}

func TestBuildStockStatus_Empty(t *testing.T) {
	st := BuildStockStatus(nil)
	assert.Zero(t, st.TotalProducts)
	assert.True(t, st.TotalStockValue.IsZero())
	assert.NotNil(t, st.LowStockItems)
	assert.NotNil(t, st.OutOfStockItems)
}
