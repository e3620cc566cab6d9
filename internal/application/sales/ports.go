package sales

import (
	"context"

	"github.com/stratera/pos-api/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction. Guarantees atomicity for the checkout engine:
// stock decrement, sale header, lines and the activity entry commit or roll
// back as one unit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		activityRepo repository.ActivityLogRepository,
	) error) error
}
