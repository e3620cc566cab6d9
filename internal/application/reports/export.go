package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var salesExportHeader = []string{
	"Receipt Number", "Date", "Time", "Customer Contact", "Items Count",
	"Items Quantity", "Subtotal", "Discount", "Tax", "Service Charge",
	"Grand Total", "Payment Method", "Cashier",
}

var inventoryExportHeader = []string{
	"ID", "Name", "Barcode", "Category", "Supplier", "Cost Price",
	"Selling Price", "Stock", "Low Stock Threshold", "Stock Value",
	"Profit Margin", "Status",
}

// ExportUseCase renders the sale ledger and the catalogue as CSV. Both
// exports run against one snapshot each, so the rows are internally
// consistent even while sales keep landing.
type ExportUseCase struct {
	snapshot SnapshotRunner
}

// NewExportUseCase builds the use case.
func NewExportUseCase(snapshot SnapshotRunner) *ExportUseCase {
	return &ExportUseCase{snapshot: snapshot}
}

// SalesCSV exports every sale of the window, one row per sale. Empty customer
// contacts are rendered as "Walk-in".
func (uc *ExportUseCase) SalesCSV(ctx context.Context, req dto.ReportRequest) ([]byte, string, error) {
	w, err := ResolveWindow(req.ReportType, req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, "", err
	}

	var rows []repository.SalesExportRow
	err = uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		rows, err = r.SalesExport(ctx, w.Start, w.QueryEnd())
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("sales export: %w", err)
	}

	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	if err := cw.Write(salesExportHeader); err != nil {
		return nil, "", err
	}
	for _, row := range rows {
		if err := cw.Write(salesExportRecord(row)); err != nil {
			return nil, "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("sales_%s_%s.csv", w.Start.Format("20060102"), w.End.Format("20060102"))
	return buf.Bytes(), name, nil
}

func salesExportRecord(row repository.SalesExportRow) []string {
	contact := row.CustomerContact
	if contact == "" {
		contact = "Walk-in"
	}
	return []string{
		row.ReceiptNumber,
		row.Date.Format(dateLayout),
		row.Date.Format("15:04:05"),
		contact,
		fmt.Sprintf("%d", row.ItemsCount),
		fmt.Sprintf("%d", row.ItemsQuantity),
		row.SubTotal.StringFixed(2),
		row.Discount.StringFixed(2),
		row.Tax.StringFixed(2),
		row.ServiceCharge.StringFixed(2),
		row.GrandTotal.StringFixed(2),
		row.PaymentMethod,
		row.Cashier,
	}
}

// InventoryCSV exports the active catalogue with derived stock value, profit
// margin and stock status columns.
func (uc *ExportUseCase) InventoryCSV(ctx context.Context) ([]byte, string, error) {
	var rows []repository.InventoryExportRow
	err := uc.snapshot.RunSnapshot(ctx, func(r repository.ReportRepository) error {
		var err error
		rows, err = r.InventoryExport(ctx)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("inventory export: %w", err)
	}

	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	if err := cw.Write(inventoryExportHeader); err != nil {
		return nil, "", err
	}
	for _, row := range rows {
		if err := cw.Write(inventoryExportRecord(row)); err != nil {
			return nil, "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("inventory_%s.csv", time.Now().Format("20060102"))
	return buf.Bytes(), name, nil
}

func inventoryExportRecord(row repository.InventoryExportRow) []string {
	stockValue := row.Price.Mul(decimal.NewFromInt(int64(row.Stock)))

	margin := decimal.Zero
	if row.Price.IsPositive() {
		margin = row.Price.Sub(row.CostPrice).Div(row.Price).Mul(hundred).Round(2)
	}

	p := entity.Product{Stock: row.Stock, LowStockThreshold: row.LowStockThreshold}
	return []string{
		row.ID,
		row.Name,
		row.Barcode,
		row.Category,
		row.Supplier,
		row.CostPrice.StringFixed(2),
		row.Price.StringFixed(2),
		fmt.Sprintf("%d", row.Stock),
		fmt.Sprintf("%d", row.LowStockThreshold),
		stockValue.StringFixed(2),
		margin.StringFixed(2) + "%",
		p.StockStatus(),
	}
}
