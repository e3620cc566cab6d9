package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicate            = errors.New("duplicate resource")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("access denied")
	ErrConflict             = errors.New("conflict with current state")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidAmount        = errors.New("invalid sale amounts")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInvalidQuantity      = errors.New("invalid quantity for product")
	ErrProductInactive      = errors.New("product is not available for sale")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrReceiptGeneration    = errors.New("could not generate a unique receipt number")
	ErrPersistence          = errors.New("storage failure")
	ErrAccountLocked        = errors.New("account is locked")
)

// InsufficientStockError reports which product ran short and how many units
// remain, so the POS front end can refresh the cart line.
// Matches ErrInsufficientStock via errors.Is.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d", e.ProductName, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientStock) succeed on the typed error.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
