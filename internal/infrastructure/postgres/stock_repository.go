package postgres

import (
	"context"
	"fmt"

	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

var _ repository.WarehouseStockRepository = (*WarehouseStockRepo)(nil)

// WarehouseStockRepo implementación de WarehouseStockRepository sobre PostgreSQL
// (usable con pool o tx; el bloqueo de fila solo tiene sentido dentro de una tx).
type WarehouseStockRepo struct {
	q Querier
}

// NewWarehouseStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewWarehouseStockRepository(q Querier) *WarehouseStockRepo {
	return &WarehouseStockRepo{q: q}
}

// GetOrCreateForUpdate materializa la fila de stock en cero si no existe y la
// bloquea con SELECT FOR UPDATE. FOR UPDATE sobre una fila inexistente no
// bloquea nada, por eso el INSERT previo: así el primer movimiento concurrente
// del par también queda serializado.
func (r *WarehouseStockRepo) GetOrCreateForUpdate(warehouseID, productID string) (*entity.WarehouseStock, error) {
	insert := `
		INSERT INTO warehouse_stock (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, warehouseID, productID); err != nil {
		return nil, fmt.Errorf("materialize stock row: %w", err)
	}

	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// UpdateQuantity fija la cantidad del par (la fila ya existe y está bloqueada).
func (r *WarehouseStockRepo) UpdateQuantity(warehouseID, productID string, quantity int64) error {
	query := `
		UPDATE warehouse_stock SET quantity = $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, warehouseID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock: fila inexistente para %s/%s", warehouseID, productID)
	}
	return nil
}
