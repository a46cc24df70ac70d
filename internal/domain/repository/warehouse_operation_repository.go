package repository

import "github.com/smontiel/sellerhub-api/internal/domain/entity"

// OperationFilter filtros para listar operaciones de bodega.
// SellerID es obligatorio: todo listado se acota a las bodegas del seller dueño.
type OperationFilter struct {
	SellerID    string
	WarehouseID string
	ProductID   string
	Type        string
}

// WarehouseOperationRepository define el puerto de persistencia para el log
// append-only de operaciones. No hay Update ni Delete: el log es inmutable.
type WarehouseOperationRepository interface {
	Create(op *entity.WarehouseOperation) error
	List(filter OperationFilter, limit, offset int) ([]*entity.WarehouseOperation, error)
	Count(filter OperationFilter) (int, error)
}
