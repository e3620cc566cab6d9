package repository

import (
	"time"

	"github.com/stratera/pos-api/internal/domain/entity"
)

// SaleFilter narrows sale history queries. Zero values mean "no filter".
type SaleFilter struct {
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod string
	Limit         int
	Offset        int
}

// SaleRepository is the append-only ledger port for sales.
// Create must fail with domain.ErrDuplicate on a receipt number collision so
// the engine can regenerate and retry. There are no update or delete methods:
// committed sales are immutable.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
