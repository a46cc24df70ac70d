package entity

import "time"

// WarehouseStock es la foto actual de existencias por (bodega, producto).
// Se materializa en cero la primera vez que el par aparece en una operación y
// nunca se borra: queda en cero en vez de eliminarse. Quantity nunca es negativa.
type WarehouseStock struct {
	WarehouseID string
	ProductID   string
	Quantity    int64
	UpdatedAt   time.Time
}
