package dto

import "github.com/shopspring/decimal"

// CreateProductRequest payload for creating a product.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Barcode           string          `json:"barcode"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	Unit              string          `json:"unit"`
	CategoryID        string          `json:"categoryId"`
	SupplierID        string          `json:"supplierId"`
}

// UpdateProductRequest payload for editing a product. Stock is deliberately
// absent: stock changes go through checkout or restock only.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Barcode           string          `json:"barcode"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	Unit              string          `json:"unit"`
	CategoryID        string          `json:"categoryId"`
	SupplierID        string          `json:"supplierId"`
	IsActive          *bool           `json:"isActive"`
}

// RestockRequest adds units to a product's stock.
type RestockRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// ProductResponse is a product as returned by the API.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Barcode           string          `json:"barcode"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	Unit              string          `json:"unit"`
	IsActive          bool            `json:"isActive"`
	CategoryID        string          `json:"categoryId"`
	SupplierID        string          `json:"supplierId,omitempty"`
	StockStatus       string          `json:"stockStatus"`
}

// ProductSearchResult is the trimmed shape the POS screen consumes.
type ProductSearchResult struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Barcode string          `json:"barcode"`
}
