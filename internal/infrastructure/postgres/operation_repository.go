package postgres

import (
	"context"
	"fmt"

	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

var _ repository.WarehouseOperationRepository = (*WarehouseOperationRepo)(nil)

// WarehouseOperationRepo implementación del log append-only de operaciones
// sobre PostgreSQL (usable con pool o tx).
type WarehouseOperationRepo struct {
	q Querier
}

// NewWarehouseOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseOperationRepository(q Querier) *WarehouseOperationRepo {
	return &WarehouseOperationRepo{q: q}
}

const operationColumns = `id, warehouse_id, product_id, type, quantity, reason, reference_id, transfer_id, performed_by, created_at`

// Create persiste una operación. Solo INSERT: el log es inmutable.
func (r *WarehouseOperationRepo) Create(op *entity.WarehouseOperation) error {
	query := `
		INSERT INTO warehouse_operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.WarehouseID, op.ProductID, op.Type, op.Quantity,
		nullIfEmpty(op.Reason), nullIfEmpty(op.ReferenceID), nullIfEmpty(op.TransferID),
		op.PerformedBy, op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse operation: %w", err)
	}
	return nil
}

// List lista operaciones de las bodegas del seller, más recientes primero.
func (r *WarehouseOperationRepo) List(filter repository.OperationFilter, limit, offset int) ([]*entity.WarehouseOperation, error) {
	query := `
		SELECT o.id, o.warehouse_id, o.product_id, o.type, o.quantity, o.reason, o.reference_id, o.transfer_id, o.performed_by, o.created_at
		FROM warehouse_operations o
		JOIN warehouses w ON w.id = o.warehouse_id
		WHERE w.seller_id = $1`
	args := []any{filter.SellerID}
	query, args = appendOperationFilters(query, args, filter)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseOperation
	for rows.Next() {
		var op entity.WarehouseOperation
		var reason, refID, transferID *string
		if err := rows.Scan(&op.ID, &op.WarehouseID, &op.ProductID, &op.Type, &op.Quantity,
			&reason, &refID, &transferID, &op.PerformedBy, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Reason = deref(reason)
		op.ReferenceID = deref(refID)
		op.TransferID = deref(transferID)
		list = append(list, &op)
	}
	return list, rows.Err()
}

// Count cuenta operaciones que matchean el filtro.
func (r *WarehouseOperationRepo) Count(filter repository.OperationFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM warehouse_operations o
		JOIN warehouses w ON w.id = o.warehouse_id
		WHERE w.seller_id = $1`
	args := []any{filter.SellerID}
	query, args = appendOperationFilters(query, args, filter)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return total, nil
}

func appendOperationFilters(query string, args []any, filter repository.OperationFilter) (string, []any) {
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		query += fmt.Sprintf(" AND o.warehouse_id = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND o.product_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND o.type = $%d", len(args))
	}
	return query, args
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
