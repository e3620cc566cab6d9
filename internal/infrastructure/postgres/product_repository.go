package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// category_id and supplier_id are uuid columns read and written as text:
// without the casts Postgres would coerce the '' literal to uuid and reject
// the statement at parse time.
const productColumns = `id, name, description, barcode, price, cost_price, stock, low_stock_threshold, unit, is_active, COALESCE(category_id::text, ''), COALESCE(supplier_id::text, ''), created_at, updated_at`

const searchProductsQuery = `
	SELECT ` + productColumns + `
	FROM products
	WHERE is_active AND stock > 0
	  AND (name ILIKE '%' || $1 || '%' OR barcode = $1)
	  AND ($2 = '' OR category_id::text = $2)
	ORDER BY name
	LIMIT $3`

// ProductRepo implements ProductRepository over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product persistence adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, barcode, price, cost_price, stock, low_stock_threshold, unit, is_active, category_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::uuid, NULLIF($12, '')::uuid, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Barcode,
		product.Price, product.CostPrice, product.Stock, product.LowStockThreshold,
		product.Unit, product.IsActive, product.CategoryID, product.SupplierID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode fetches a product by its barcode.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product by barcode")
}

// GetForUpdate fetches a product and locks its row until the enclosing
// transaction ends. A lock wait past lock_timeout maps to ErrConflict.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
	if err != nil && isLockTimeout(err) {
		return nil, domain.ErrConflict
	}
	return p, err
}

// Update edits product fields. Stock is excluded: it only changes through
// UpdateStock under a row lock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, barcode = $4, price = $5, cost_price = $6,
		    low_stock_threshold = $7, unit = $8, is_active = $9,
		    category_id = NULLIF($10, '')::uuid, supplier_id = NULLIF($11, '')::uuid, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Barcode,
		product.Price, product.CostPrice, product.LowStockThreshold, product.Unit,
		product.IsActive, product.CategoryID, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock sets the absolute stock value. Callers hold the row lock.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List pages through the catalogue, newest first.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.scanAll(rows)
}

// ListActive returns every active product.
func (r *ProductRepo) ListActive() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return r.scanAll(rows)
}

// Search matches active, in-stock products by name or barcode, optionally
// filtered by category.
func (r *ProductRepo) Search(term, categoryID string, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), searchProductsQuery, term, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return r.scanAll(rows)
}

// SetActive toggles the soft-delete flag.
func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Barcode, &p.Price, &p.CostPrice,
		&p.Stock, &p.LowStockThreshold, &p.Unit, &p.IsActive, &p.CategoryID,
		&p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
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
