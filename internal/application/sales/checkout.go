package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// maxReceiptAttempts bounds the regenerate-and-retry loop on receipt number
// collisions. The 4-digit suffix gives 9000 values per day; five attempts
// keep the failure odds negligible short of a pathological day.
const maxReceiptAttempts = 5

// CheckoutUseCase turns a cashier's cart into a committed sale: validation,
// row-locked stock decrement, sale + lines + activity entry, all in one
// transaction. This is the only code path that reduces stock.
type CheckoutUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewCheckoutUseCase builds the use case.
func NewCheckoutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
	}
}

// Checkout processes a sale for the authenticated cashier. Validation
// failures are reported with no state change; a commit-time stock conflict
// rolls everything back and is retryable after refreshing the cart.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, cashierID string, in *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if cashierID == "" {
		return nil, domain.ErrUnauthorized
	}

	// First pass outside the transaction: resolve products and validate the
	// cart against current state. Catches bad input cheaply before locking.
	products := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if product != nil {
			products[item.ProductID] = product
		}
	}
	if err := ValidateCart(in, products); err != nil {
		return nil, err
	}

	// Currency symbol for the audit description; defaults when unseeded.
	settings, err := uc.settingsRepo.Get()
	if err != nil || settings == nil {
		settings = entity.DefaultSettings()
	}

	var sale *entity.Sale
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		now := time.Now()
		sale = uc.buildSale(cashierID, in, now)
		sale.ReceiptNumber = GenerateReceiptNumber(now)

		err = uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			saleRepo repository.SaleRepository,
			activityRepo repository.ActivityLogRepository,
		) error {
			return uc.commit(productRepo, saleRepo, activityRepo, sale, settings.CurrencySymbol)
		})
		if errors.Is(err, domain.ErrDuplicate) {
			// Receipt number collision: regenerate and retry the whole unit
			// of work. Nothing from the failed attempt is visible.
			continue
		}
		break
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, domain.ErrReceiptGeneration
	}
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		Success:       true,
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		Message:       "Sale processed successfully",
	}, nil
}

// commit is the body of the atomic unit of work. Runs with repositories bound
// to one transaction; any returned error rolls the whole thing back.
func (uc *CheckoutUseCase) commit(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	activityRepo repository.ActivityLogRepository,
	sale *entity.Sale,
	currencySymbol string,
) error {
	// Re-read each product under a row lock and re-check stock. This guards
	// the race between validation and commit: two concurrent checkouts of
	// the same product serialize here. Rows are locked in product ID order
	// regardless of cart order, so two multi-item carts referencing the same
	// products cannot deadlock against each other.
	locked := append([]*entity.SaleItem(nil), sale.Items...)
	sort.Slice(locked, func(i, j int) bool { return locked[i].ProductID < locked[j].ProductID })
	for _, item := range locked {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if product == nil {
			return fmt.Errorf("%w: product %s", domain.ErrNotFound, item.ProductID)
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", domain.ErrProductInactive, product.Name)
		}
		if product.Stock < item.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
			}
		}
		if err := productRepo.UpdateStock(product.ID, product.Stock-item.Quantity); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		// Snapshot the name as sold, so later product edits never rewrite
		// historical receipts.
		item.ProductName = product.Name
	}

	if err := saleRepo.Create(sale); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return err // receipt collision, caller retries with a new number
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	for _, item := range sale.Items {
		if err := saleRepo.CreateItem(item); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	// The audit entry rides in the same transaction: a committed sale always
	// has its log entry, an aborted one never does.
	entry := &entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       sale.UserID,
		ActivityType: entity.ActivityCreateSale,
		Description: fmt.Sprintf("Processed sale #%s - Total: %s%s (%d items, %d units)",
			sale.ReceiptNumber, currencySymbol, sale.GrandTotal.StringFixed(2),
			len(sale.Items), sale.TotalUnits()),
		EntityType: "Sale",
		EntityID:   sale.ID,
		Timestamp:  sale.Date,
	}
	if err := activityRepo.Create(entry); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// buildSale materializes the sale aggregate with denormalized line data.
func (uc *CheckoutUseCase) buildSale(cashierID string, in *dto.CheckoutRequest, now time.Time) *entity.Sale {
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		Date:            now,
		SubTotal:        in.SubTotal,
		Discount:        in.Discount,
		Tax:             in.Tax,
		ServiceCharge:   in.ServiceCharge,
		GrandTotal:      in.GrandTotal,
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		CustomerContact: strings.TrimSpace(in.CustomerContact),
		UserID:          cashierID,
		CreatedAt:       now,
	}
	for i, item := range in.Items {
		sale.Items = append(sale.Items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Position:  i + 1, // receipts keep cart order
		})
	}
	return sale
}

// GetSale returns a committed sale with its lines (receipt view).
func (uc *CheckoutUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	sale.Items = items
	return toSaleResponse(sale), nil
}

// ListSales returns sale history filtered by date range and payment method.
func (uc *CheckoutUseCase) ListSales(ctx context.Context, in dto.SaleHistoryRequest) ([]dto.SaleResponse, error) {
	filter := repository.SaleFilter{
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if in.StartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", in.StartDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = t
	}
	if in.EndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", in.EndDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.EndDate = t
	}

	sales, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:              sale.ID,
		ReceiptNumber:   sale.ReceiptNumber,
		Date:            sale.Date.Format(time.RFC3339),
		SubTotal:        sale.SubTotal,
		Discount:        sale.Discount,
		Tax:             sale.Tax,
		ServiceCharge:   sale.ServiceCharge,
		GrandTotal:      sale.GrandTotal,
		PaymentMethod:   sale.PaymentMethod,
		CustomerContact: sale.CustomerContact,
		CashierID:       sale.UserID,
		Items:           make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total(),
		})
	}
	return resp
}
