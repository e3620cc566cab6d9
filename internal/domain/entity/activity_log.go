package entity

import "time"

// Activity kinds recorded in the audit trail. Closed set; anything outside it
// is ActivityOther.
const (
	ActivityLogin          = "Login"
	ActivityLogout         = "Logout"
	ActivityCreateProduct  = "CreateProduct"
	ActivityUpdateProduct  = "UpdateProduct"
	ActivityDeleteProduct  = "DeleteProduct"
	ActivityCreateCategory = "CreateCategory"
	ActivityUpdateCategory = "UpdateCategory"
	ActivityDeleteCategory = "DeleteCategory"
	ActivityCreateSale     = "CreateSale"
	ActivityUpdateSettings = "UpdateSettings"
	ActivityCreateUser     = "CreateUser"
	ActivityUpdateUser     = "UpdateUser"
	ActivityDeleteUser     = "DeleteUser"
	ActivityOther          = "Other"
)

// ActivityLogEntry is one append-only audit record. Entries are never updated
// or deleted; a sale's entry is written inside the same transaction as the sale.
type ActivityLogEntry struct {
	ID           string
	UserID       string
	ActivityType string
	Description  string
	EntityType   string // e.g. "Product", "Sale", "Category"; empty when n/a
	EntityID     string
	Timestamp    time.Time
}
