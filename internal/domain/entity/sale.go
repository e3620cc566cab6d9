package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the header of a committed checkout. Sales are immutable facts:
// there is no update or delete path once the transaction commits.
// Invariant: GrandTotal = SubTotal - Discount + Tax + ServiceCharge.
type Sale struct {
	ID              string
	Date            time.Time
	SubTotal        decimal.Decimal
	Discount        decimal.Decimal
	Tax             decimal.Decimal
	ServiceCharge   decimal.Decimal
	GrandTotal      decimal.Decimal
	PaymentMethod   string
	CustomerContact string
	UserID          string // cashier who rang the sale
	ReceiptNumber   string // unique, RCP-<YYYYMMDD>-<4 digits>
	CreatedAt       time.Time
	Items           []*SaleItem
}

// TotalUnits sums the quantities across all lines.
func (s *Sale) TotalUnits() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// SaleItem is one line of a sale. Product name and price are denormalized so
// historical receipts survive later product edits.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Position    int // 1-based cart order, preserved on receipts
}

// Total returns quantity times unit price for the line.
func (i *SaleItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
