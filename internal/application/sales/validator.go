package sales

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
)

// totalTolerance is the accepted rounding drift on submitted totals.
var totalTolerance = decimal.NewFromFloat(0.01)

// ValidateCart checks a submitted cart against a product snapshot before any
// mutation. Pure: reads the snapshot, writes nothing. The same stock check is
// repeated under row locks at commit time because state can move between
// validation and commit.
func ValidateCart(in *dto.CheckoutRequest, products map[string]*entity.Product) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	if !in.SubTotal.IsPositive() || !in.GrandTotal.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return domain.ErrMissingPaymentMethod
	}

	var lineTotal decimal.Decimal
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: product %s", domain.ErrInvalidQuantity, item.ProductID)
		}
		product, ok := products[item.ProductID]
		if !ok || product == nil {
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
		lineTotal = lineTotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Submitted totals must agree with the cart lines within rounding:
	// subTotal = sum(qty * unitPrice), grandTotal = subTotal - discount + tax + serviceCharge.
	if lineTotal.Sub(in.SubTotal).Abs().GreaterThan(totalTolerance) {
		return domain.ErrInvalidAmount
	}
	expected := in.SubTotal.Sub(in.Discount).Add(in.Tax).Add(in.ServiceCharge)
	if expected.Sub(in.GrandTotal).Abs().GreaterThan(totalTolerance) {
		return domain.ErrInvalidAmount
	}
	return nil
}
