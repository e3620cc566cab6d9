package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implements the read-only report queries over PostgreSQL. Bind it
// to a repeatable-read transaction (via TxRunner.RunSnapshot) when several
// queries must observe the same point in time.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter. Pass pool or tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals aggregates the sale headers in [start, end).
func (r *ReportRepo) SalesTotals(ctx context.Context, start, end time.Time) (*repository.SalesTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(grand_total), 0),
		       COALESCE(SUM(sub_total), 0),
		       COALESCE(SUM(discount), 0),
		       COALESCE(SUM(tax), 0),
		       COALESCE(SUM(service_charge), 0)
		FROM sales WHERE date >= $1 AND date < $2`
	var t repository.SalesTotals
	err := r.q.QueryRow(ctx, query, start, end).Scan(
		&t.Transactions, &t.GrandTotal, &t.SubTotal, &t.Discount, &t.Tax, &t.ServiceCharge,
	)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	return &t, nil
}

// RevenueBetween sums grand totals in [start, end).
func (r *ReportRepo) RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(grand_total), 0) FROM sales WHERE date >= $1 AND date < $2`,
		start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue between: %w", err)
	}
	return total, nil
}

// TopProducts ranks products by units sold in [start, end). Ties keep a
// stable order by product name so the ranking does not shuffle between loads.
func (r *ReportRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	query := `
		SELECT si.product_id, si.product_name,
		       SUM(si.quantity)::int,
		       COALESCE(SUM(si.quantity * si.unit_price), 0),
		       COUNT(DISTINCT si.sale_id)::int
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.date >= $1 AND s.date < $2
		GROUP BY si.product_id, si.product_name
		ORDER BY SUM(si.quantity) DESC, si.product_name
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.Revenue, &row.Transactions); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// PaymentMethods breaks the window down per payment method, biggest first.
func (r *ReportRepo) PaymentMethods(ctx context.Context, start, end time.Time) ([]repository.PaymentMethodRow, error) {
	query := `
		SELECT payment_method, COUNT(*)::int, COALESCE(SUM(grand_total), 0)
		FROM sales WHERE date >= $1 AND date < $2
		GROUP BY payment_method
		ORDER BY SUM(grand_total) DESC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("payment methods: %w", err)
	}
	defer rows.Close()
	var list []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.Method, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DailyRevenue returns per-day totals for days that had sales; the engine
// zero-fills the gaps.
func (r *ReportRepo) DailyRevenue(ctx context.Context, start, end time.Time) ([]repository.DailyRevenueRow, error) {
	query := `
		SELECT date_trunc('day', date), COALESCE(SUM(grand_total), 0), COUNT(*)::int
		FROM sales WHERE date >= $1 AND date < $2
		GROUP BY 1 ORDER BY 1`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()
	var list []repository.DailyRevenueRow
	for rows.Next() {
		var row repository.DailyRevenueRow
		if err := rows.Scan(&row.Day, &row.Total, &row.Transactions); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CostEstimate returns window revenue and estimated cost over the sale lines.
// Lines whose product has no recorded cost price are costed at 60% of their
// sale unit price.
func (r *ReportRepo) CostEstimate(ctx context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity * si.unit_price), 0),
		       COALESCE(SUM(si.quantity * CASE
		           WHEN p.cost_price IS NOT NULL AND p.cost_price > 0 THEN p.cost_price
		           ELSE si.unit_price * 0.6
		       END), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		LEFT JOIN products p ON p.id = si.product_id
		WHERE s.date >= $1 AND s.date < $2`
	var revenue, cost decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&revenue, &cost); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("cost estimate: %w", err)
	}
	return revenue, cost, nil
}

// ActiveProducts returns the active catalogue for stock classification.
func (r *ReportRepo) ActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("active products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Barcode, &p.Price, &p.CostPrice,
			&p.Stock, &p.LowStockThreshold, &p.Unit, &p.IsActive, &p.CategoryID,
			&p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// RecentSales returns the latest sale headers for the dashboard ticker.
func (r *ReportRepo) RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, date, sub_total, discount, tax, service_charge, grand_total, payment_method, customer_contact, user_id, receipt_number, created_at
		FROM sales ORDER BY date DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Date, &s.SubTotal, &s.Discount, &s.Tax, &s.ServiceCharge,
			&s.GrandTotal, &s.PaymentMethod, &s.CustomerContact, &s.UserID,
			&s.ReceiptNumber, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SalesExport flattens the sales of [start, end) with item counts and the
// cashier's username.
func (r *ReportRepo) SalesExport(ctx context.Context, start, end time.Time) ([]repository.SalesExportRow, error) {
	query := `
		SELECT s.receipt_number, s.date, s.customer_contact,
		       COUNT(si.id)::int, COALESCE(SUM(si.quantity), 0)::int,
		       s.sub_total, s.discount, s.tax, s.service_charge, s.grand_total,
		       s.payment_method, COALESCE(u.username, '')
		FROM sales s
		LEFT JOIN sale_items si ON si.sale_id = s.id
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.date >= $1 AND s.date < $2
		GROUP BY s.id, u.username
		ORDER BY s.date`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales export: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesExportRow
	for rows.Next() {
		var row repository.SalesExportRow
		if err := rows.Scan(
			&row.ReceiptNumber, &row.Date, &row.CustomerContact,
			&row.ItemsCount, &row.ItemsQuantity,
			&row.SubTotal, &row.Discount, &row.Tax, &row.ServiceCharge,
			&row.GrandTotal, &row.PaymentMethod, &row.Cashier,
		); err != nil {
			return nil, fmt.Errorf("scan sales export row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// InventoryExport flattens the active catalogue with category and supplier
// names resolved.
func (r *ReportRepo) InventoryExport(ctx context.Context) ([]repository.InventoryExportRow, error) {
	query := `
		SELECT p.id, p.name, p.barcode,
		       COALESCE(c.name, ''), COALESCE(sp.name, ''),
		       p.cost_price, p.price, p.stock, p.low_stock_threshold
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN suppliers sp ON sp.id = p.supplier_id
		WHERE p.is_active
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory export: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryExportRow
	for rows.Next() {
		var row repository.InventoryExportRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Barcode, &row.Category, &row.Supplier,
			&row.CostPrice, &row.Price, &row.Stock, &row.LowStockThreshold,
		); err != nil {
			return nil, fmt.Errorf("scan inventory export row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
