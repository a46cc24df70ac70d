package repository

import "github.com/smontiel/sellerhub-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	ListBySeller(sellerID string, limit, offset int) ([]*entity.Warehouse, error)
}
