package entity

import "time"

// Category groups products for the POS browse screen.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
