package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (usable with pool or tx).
// Sales are insert-only; there are no UPDATE or DELETE statements here.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the sale persistence adapter. Pass pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserts the sale header. A receipt_number collision returns
// domain.ErrDuplicate so the checkout engine can regenerate and retry.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, sub_total, discount, tax, service_charge, grand_total, payment_method, customer_contact, user_id, receipt_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.SubTotal, sale.Discount, sale.Tax,
		sale.ServiceCharge, sale.GrandTotal, sale.PaymentMethod,
		sale.CustomerContact, sale.UserID, sale.ReceiptNumber, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserts one sale line.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID fetches a sale with its items.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, date, sub_total, discount, tax, service_charge, grand_total, payment_method, customer_contact, user_id, receipt_number, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.SubTotal, &s.Discount, &s.Tax, &s.ServiceCharge,
		&s.GrandTotal, &s.PaymentMethod, &s.CustomerContact, &s.UserID,
		&s.ReceiptNumber, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// GetItemsBySaleID fetches the lines of a sale.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, position
		FROM sale_items WHERE sale_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Position); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List returns sale headers matching the filter, newest first.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		conds []string
		args  []any
	)
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		conds = append(conds, fmt.Sprintf("date < $%d", len(args)))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		conds = append(conds, fmt.Sprintf("payment_method = $%d", len(args)))
	}

	query := `
		SELECT id, date, sub_total, discount, tax, service_charge, grand_total, payment_method, customer_contact, user_id, receipt_number, created_at
		FROM sales`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
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
