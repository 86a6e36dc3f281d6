package repository

import "time"

// Order represents an order row in the local cache.
type Order struct {
	ID        string
	Customer  string
	SKU       string
	Quantity  int64
	Notes     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
