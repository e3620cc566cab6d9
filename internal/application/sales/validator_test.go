package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
)

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testProduct(id, name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     name,
		Price:    money(price),
		Stock:    stock,
		IsActive: true,
	}
}

// validCart builds a cart that passes validation: 2 x 5.00 + 1 x 2.50 = 12.50.
func validCart() (*dto.CheckoutRequest, map[string]*entity.Product) {
	in := &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: money("5.00")},
			{ProductID: "p2", Quantity: 1, UnitPrice: money("2.50")},
		},
		SubTotal:      money("12.50"),
		GrandTotal:    money("12.50"),
		PaymentMethod: "Cash",
	}
	products := map[string]*entity.Product{
		"p1": testProduct("p1", "Rice 5kg", "5.00", 10),
		"p2": testProduct("p2", "Cooking Oil", "2.50", 3),
	}
	return in, products
}

func TestValidateCart_OK(t *testing.T) {
	in, products := validCart()
	assert.NoError(t, sales.ValidateCart(in, products))
}

func TestValidateCart_EmptyCart(t *testing.T) {
	in, products := validCart()
	in.Items = nil
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrEmptyCart)
}

func TestValidateCart_NonPositiveTotals(t *testing.T) {
	in, products := validCart()
	in.SubTotal = decimal.Zero
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrInvalidAmount)

	in, products = validCart()
	in.GrandTotal = money("-1")
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrInvalidAmount)
}

func TestValidateCart_MissingPaymentMethod(t *testing.T) {
	in, products := validCart()
	in.PaymentMethod = "   "
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrMissingPaymentMethod)
}

func TestValidateCart_ZeroQuantity(t *testing.T) {
	in, products := validCart()
	in.Items[0].Quantity = 0
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrInvalidQuantity)
}

func TestValidateCart_UnknownProduct(t *testing.T) {
	in, products := validCart()
	delete(products, "p2")
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrNotFound)
}

func TestValidateCart_InactiveProduct(t *testing.T) {
	in, products := validCart()
	products["p1"].IsActive = false
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrProductInactive)
}

func TestValidateCart_InsufficientStock(t *testing.T) {
	in, products := validCart()
	products["p2"].Stock = 0

	err := sales.ValidateCart(in, products)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, 0, stockErr.Available)
}

func TestValidateCart_SubtotalMismatch(t *testing.T) {
	in, products := validCart()
	in.SubTotal = money("20.00")
	in.GrandTotal = money("20.00")
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrInvalidAmount)
}

func TestValidateCart_GrandTotalArithmetic(t *testing.T) {
	// 12.50 - 2.00 + 1.00 + 0.50 = 12.00
	in, products := validCart()
	in.Discount = money("2.00")
	in.Tax = money("1.00")
	in.ServiceCharge = money("0.50")
	in.GrandTotal = money("12.00")
	assert.NoError(t, sales.ValidateCart(in, products))

	in.GrandTotal = money("13.00")
	assert.ErrorIs(t, sales.ValidateCart(in, products), domain.ErrInvalidAmount)
}

func TestValidateCart_ToleratesRounding(t *testing.T) {
	in, products := validCart()
	in.SubTotal = money("12.51") // off by one cent, inside tolerance
	in.GrandTotal = money("12.51")
	assert.NoError(t, sales.ValidateCart(in, products))
}
