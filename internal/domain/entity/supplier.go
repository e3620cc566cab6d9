package entity

import "time"

// Supplier is a product vendor, referenced by products through SupplierID.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
