package dto

// CategoryRequest create/update payload for a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse a category as returned by the API.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupplierRequest create/update payload for a supplier.
type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// SupplierResponse a supplier as returned by the API.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ActivityLogResponse one audit trail entry.
type ActivityLogResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	ActivityType string `json:"activityType"`
	Description  string `json:"description"`
	EntityType   string `json:"entityType,omitempty"`
	EntityID     string `json:"entityId,omitempty"`
	Timestamp    string `json:"timestamp"`
}
