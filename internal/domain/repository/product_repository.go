package repository

import "github.com/stratera/pos-api/internal/domain/entity"

// ProductRepository is the persistence port for Product.
// Stock mutations happen only through GetForUpdate + UpdateStock inside a
// transaction; plain Update never touches the stock column.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// GetForUpdate locks the product row (SELECT ... FOR UPDATE) for the
	// duration of the enclosing transaction.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock sets the absolute stock value. Callers hold the row lock.
	UpdateStock(id string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListActive() ([]*entity.Product, error)
	// Search returns up to limit active, in-stock products matching the term
	// on name or barcode, optionally filtered by category.
	Search(term, categoryID string, limit int) ([]*entity.Product, error)
	SetActive(id string, active bool) error
}
