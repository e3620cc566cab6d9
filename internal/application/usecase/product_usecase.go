package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/logger"
)

// searchLimit caps the POS lookup box at 50 results per query.
const searchLimit = 50

// StockTxRunner runs fn inside one database transaction with repositories
// bound to it. Restocks use it so the stock read and write hold a row lock.
type StockTxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository, sales repository.SaleRepository, activity repository.ActivityLogRepository) error) error
}

// ProductUseCase manages the catalogue. Stock is only mutated here for
// restocks; sales decrement it through the checkout engine.
type ProductUseCase struct {
	products repository.ProductRepository
	activity repository.ActivityLogRepository
	tx       StockTxRunner
	log      *logger.Logger
}

// NewProductUseCase builds the use case.
func NewProductUseCase(products repository.ProductRepository, activity repository.ActivityLogRepository, tx StockTxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, activity: activity, tx: tx, log: log}
}

// Create registers a new product.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.CostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: stock values cannot be negative", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Barcode:           strings.TrimSpace(in.Barcode),
		Price:             in.Price,
		CostPrice:         in.CostPrice,
		Stock:             in.Stock,
		LowStockThreshold: in.LowStockThreshold,
		Unit:              in.Unit,
		IsActive:          true,
		CategoryID:        in.CategoryID,
		SupplierID:        in.SupplierID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}

	uc.recordActivity(userID, entity.ActivityCreateProduct,
		fmt.Sprintf("Created product '%s'", product.Name), "Product", product.ID)
	return toProductResponse(product), nil
}

// Get returns one product by id.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode resolves a scanned barcode.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByBarcode(strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update edits product fields. Stock is untouched here.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.CostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", domain.ErrInvalidInput)
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Barcode = strings.TrimSpace(in.Barcode)
	product.Price = in.Price
	product.CostPrice = in.CostPrice
	product.LowStockThreshold = in.LowStockThreshold
	product.Unit = in.Unit
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}

	uc.recordActivity(userID, entity.ActivityUpdateProduct,
		fmt.Sprintf("Updated product '%s'", product.Name), "Product", product.ID)
	return toProductResponse(product), nil
}

// Deactivate soft-deletes a product. Historical sale lines keep referencing it.
func (uc *ProductUseCase) Deactivate(ctx context.Context, userID, id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.SetActive(id, false); err != nil {
		return err
	}

	uc.recordActivity(userID, entity.ActivityDeleteProduct,
		fmt.Sprintf("Deactivated product '%s'", product.Name), "Product", id)
	return nil
}

// Restock adds units under a row lock so a concurrent checkout cannot
// interleave between the read and the write.
func (uc *ProductUseCase) Restock(ctx context.Context, userID, id string, in *dto.RestockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", domain.ErrInvalidQuantity)
	}

	var updated *entity.Product
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.SaleRepository, activity repository.ActivityLogRepository) error {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.Stock + in.Quantity
		if err := products.UpdateStock(id, newStock); err != nil {
			return err
		}
		product.Stock = newStock
		updated = product

		desc := fmt.Sprintf("Restocked product '%s' (+%d units)", product.Name, in.Quantity)
		if in.Note != "" {
			desc += ": " + in.Note
		}
		return activity.Create(&entity.ActivityLogEntry{
			ID:           uuid.New().String(),
			UserID:       userID,
			ActivityType: entity.ActivityUpdateProduct,
			Description:  desc,
			EntityType:   "Product",
			EntityID:     id,
			Timestamp:    time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// List pages through the catalogue, inactive products included.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Search serves the POS lookup box: active, in-stock products only.
func (uc *ProductUseCase) Search(ctx context.Context, term, categoryID string) ([]dto.ProductSearchResult, error) {
	products, err := uc.products.Search(strings.TrimSpace(term), categoryID, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSearchResult, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductSearchResult{
			ID:      p.ID,
			Name:    p.Name,
			Price:   p.Price,
			Stock:   p.Stock,
			Barcode: p.Barcode,
		})
	}
	return out, nil
}

// recordActivity appends an audit entry outside the main operation; failures
// are logged, not surfaced.
func (uc *ProductUseCase) recordActivity(userID, activityType, description, entityType, entityID string) {
	err := uc.activity.Create(&entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		EntityType:   entityType,
		EntityID:     entityID,
		Timestamp:    time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("activity", activityType).Msg("activity log write failed")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Barcode:           p.Barcode,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		Unit:              p.Unit,
		IsActive:          p.IsActive,
		CategoryID:        p.CategoryID,
		SupplierID:        p.SupplierID,
		StockStatus:       p.StockStatus(),
	}
}
