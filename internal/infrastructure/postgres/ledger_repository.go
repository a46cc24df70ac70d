package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

var _ repository.WarehouseLedgerRepository = (*WarehouseLedgerRepo)(nil)

// WarehouseLedgerRepo escritura transaccional del libro mayor (usable con pool o tx).
type WarehouseLedgerRepo struct {
	q Querier
}

// NewWarehouseLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseLedgerRepository(q Querier) *WarehouseLedgerRepo {
	return &WarehouseLedgerRepo{q: q}
}

// Create apendiza una entrada del libro mayor. Solo INSERT: el libro es inmutable.
func (r *WarehouseLedgerRepo) Create(entry *entity.WarehouseLedger) error {
	query := `
		INSERT INTO warehouse_ledger (id, warehouse_id, product_id, operation_id, date, type,
			quantity, unit_price, total_value, balance_qty, balance_value, performed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.WarehouseID, entry.ProductID, entry.OperationID, entry.Date, entry.Type,
		entry.Quantity, entry.UnitPrice, entry.TotalValue, entry.BalanceQty, entry.BalanceValue,
		entry.PerformedBy, nullIfEmpty(entry.Notes), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetLatest devuelve la entrada más reciente del par (fecha y creación
// descendentes); nil si el par aún no tiene historia. Llamar con el bloqueo de
// stock tomado: es la lectura del read-modify-write del saldo corrido.
func (r *WarehouseLedgerRepo) GetLatest(warehouseID, productID string) (*entity.WarehouseLedger, error) {
	query := `
		SELECT id, warehouse_id, product_id, operation_id, date, type,
			quantity, unit_price, total_value, balance_qty, balance_value, performed_by, notes, created_at
		FROM warehouse_ledger
		WHERE warehouse_id = $1 AND product_id = $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1`
	var e entity.WarehouseLedger
	var notes *string
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&e.ID, &e.WarehouseID, &e.ProductID, &e.OperationID, &e.Date, &e.Type,
		&e.Quantity, &e.UnitPrice, &e.TotalValue, &e.BalanceQty, &e.BalanceValue,
		&e.PerformedBy, &notes, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest ledger entry: %w", err)
	}
	e.Notes = deref(notes)
	return &e, nil
}
