package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

var _ repository.LedgerQueryRepository = (*LedgerQueryRepo)(nil)

// LedgerQueryRepo consultas de solo lectura sobre el libro mayor: listados con
// campos de presentación y agregados para el resumen. Siempre sobre el pool,
// nunca dentro de la transacción de escritura.
type LedgerQueryRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerQueryRepository construye el adaptador de consulta.
func NewLedgerQueryRepository(pool *pgxpool.Pool) *LedgerQueryRepo {
	return &LedgerQueryRepo{pool: pool}
}

// Query lista entradas del conjunto filtrado, más recientes primero, con
// nombres de bodega y producto para presentación.
func (r *LedgerQueryRepo) Query(ctx context.Context, filter repository.LedgerFilter, limit, offset int) ([]*repository.LedgerEntryView, error) {
	query := `
		SELECT l.id, l.warehouse_id, l.product_id, l.operation_id, l.date, l.type,
			l.quantity, l.unit_price, l.total_value, l.balance_qty, l.balance_value,
			l.performed_by, l.notes, l.created_at,
			w.name, p.name, p.sku
		FROM warehouse_ledger l
		JOIN warehouses w ON w.id = l.warehouse_id
		JOIN products   p ON p.id = l.product_id
		WHERE w.seller_id = $1`
	args := []any{filter.SellerID}
	query, args = appendLedgerFilters(query, args, filter)
	query += fmt.Sprintf(" ORDER BY l.date DESC, l.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()
	var list []*repository.LedgerEntryView
	for rows.Next() {
		var v repository.LedgerEntryView
		var notes *string
		e := &v.Entry
		if err := rows.Scan(&e.ID, &e.WarehouseID, &e.ProductID, &e.OperationID, &e.Date, &e.Type,
			&e.Quantity, &e.UnitPrice, &e.TotalValue, &e.BalanceQty, &e.BalanceValue,
			&e.PerformedBy, &notes, &e.CreatedAt,
			&v.WarehouseName, &v.ProductName, &v.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Notes = deref(notes)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Count cuenta entradas del conjunto filtrado.
func (r *LedgerQueryRepo) Count(ctx context.Context, filter repository.LedgerFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM warehouse_ledger l
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE w.seller_id = $1`
	args := []any{filter.SellerID}
	query, args = appendLedgerFilters(query, args, filter)

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return total, nil
}

// Totals calcula los agregados del resumen sobre el conjunto filtrado:
// sumas de valor por tipo (solo INCOMING/OUTGOING cuentan; los TRANSFER se
// excluyen por ser neutros entre bodegas del mismo seller) y saldos vigentes
// (última entrada por par, vía DISTINCT ON) sumados.
func (r *LedgerQueryRepo) Totals(ctx context.Context, filter repository.LedgerFilter) (*repository.LedgerTotals, error) {
	var t repository.LedgerTotals

	sums := `
		SELECT
			COALESCE(SUM(l.total_value) FILTER (WHERE l.type = 'INCOMING'), 0),
			COALESCE(SUM(l.total_value) FILTER (WHERE l.type = 'OUTGOING'), 0)
		FROM warehouse_ledger l
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE w.seller_id = $1`
	args := []any{filter.SellerID}
	sums, args = appendLedgerFilters(sums, args, filter)
	if err := r.pool.QueryRow(ctx, sums, args...).Scan(&t.Incoming, &t.Outgoing); err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}

	balances := `
		SELECT COALESCE(SUM(balance_qty), 0), COALESCE(SUM(balance_value), 0)
		FROM (
			SELECT DISTINCT ON (l.warehouse_id, l.product_id) l.balance_qty, l.balance_value
			FROM warehouse_ledger l
			JOIN warehouses w ON w.id = l.warehouse_id
			WHERE w.seller_id = $1`
	args = []any{filter.SellerID}
	balances, args = appendLedgerFilters(balances, args, filter)
	balances += `
			ORDER BY l.warehouse_id, l.product_id, l.date DESC, l.created_at DESC
		) latest`
	if err := r.pool.QueryRow(ctx, balances, args...).Scan(&t.TotalBalanceQty, &t.TotalBalanceValue); err != nil {
		return nil, fmt.Errorf("ledger balances: %w", err)
	}

	return &t, nil
}

func appendLedgerFilters(query string, args []any, filter repository.LedgerFilter) (string, []any) {
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		query += fmt.Sprintf(" AND l.warehouse_id = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND l.product_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND l.type = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND l.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND l.date <= $%d", len(args))
	}
	return query, args
}
