package dto

import "github.com/shopspring/decimal"

// CheckoutItem is one cart line as submitted by the POS front end.
type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CheckoutRequest is the checkout payload. Totals are computed client-side
// and re-validated server-side against the cart lines.
type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"items"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	Discount        decimal.Decimal `json:"discount"`
	Tax             decimal.Decimal `json:"tax"`
	ServiceCharge   decimal.Decimal `json:"serviceCharge"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	PaymentMethod   string          `json:"paymentMethod"`
	CustomerContact string          `json:"customerContact"`
}

// CheckoutResponse is the success body for a committed sale.
type CheckoutResponse struct {
	Success       bool   `json:"success"`
	SaleID        string `json:"saleId"`
	ReceiptNumber string `json:"receiptNumber"`
	Message       string `json:"message"`
}

// SaleItemResponse is one line on a stored receipt.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse is a stored sale with its lines.
type SaleResponse struct {
	ID              string             `json:"id"`
	ReceiptNumber   string             `json:"receiptNumber"`
	Date            string             `json:"date"`
	SubTotal        decimal.Decimal    `json:"subTotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Tax             decimal.Decimal    `json:"tax"`
	ServiceCharge   decimal.Decimal    `json:"serviceCharge"`
	GrandTotal      decimal.Decimal    `json:"grandTotal"`
	PaymentMethod   string             `json:"paymentMethod"`
	CustomerContact string             `json:"customerContact"`
	CashierID       string             `json:"cashierId"`
	Items           []SaleItemResponse `json:"items"`
}

// SaleHistoryRequest filters the sale history listing.
type SaleHistoryRequest struct {
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
	PaymentMethod string `query:"paymentMethod"`
	Limit         int    `query:"limit"`
	Offset        int    `query:"offset"`
}
