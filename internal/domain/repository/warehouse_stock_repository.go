package repository

import "github.com/smontiel/sellerhub-api/internal/domain/entity"

// WarehouseStockRepository define el puerto para el stock actual por
// (bodega, producto). Usado dentro de transacciones para garantizar consistencia.
type WarehouseStockRepository interface {
	// GetOrCreateForUpdate materializa la fila en cero si no existe y la bloquea
	// (SELECT FOR UPDATE). Es el punto de serialización del motor de libro mayor:
	// todo read-modify-write sobre el par ocurre con este bloqueo tomado.
	GetOrCreateForUpdate(warehouseID, productID string) (*entity.WarehouseStock, error)
	UpdateQuantity(warehouseID, productID string, quantity int64) error
}
