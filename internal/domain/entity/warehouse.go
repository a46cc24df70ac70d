package entity

import "time"

// Warehouse representa una bodega de un seller (multi-bodega por cuenta).
type Warehouse struct {
	ID        string
	SellerID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
