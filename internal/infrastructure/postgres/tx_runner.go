package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smontiel/sellerhub-api/internal/application/ledger"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Ante un fallo transitorio (serialización 40001, deadlock 40P01, clase 08 de
// conexión) reintenta el callback completo UNA vez; los errores de negocio
// nunca se reintentan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si el reintento también falla por causa transitoria, el error se reporta como
// ErrConflict: el cliente puede repetir la petición.
func (r *TxRunner) Run(ctx context.Context, fn func(
	opRepo repository.WarehouseOperationRepository,
	stockRepo repository.WarehouseStockRepository,
	ledgerRepo repository.WarehouseLedgerRepository,
) error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("%v: %w", err, domain.ErrConflict)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	opRepo repository.WarehouseOperationRepository,
	stockRepo repository.WarehouseStockRepository,
	ledgerRepo repository.WarehouseLedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	opRepo := NewWarehouseOperationRepository(tx)
	stockRepo := NewWarehouseStockRepository(tx)
	ledgerRepo := NewWarehouseLedgerRepository(tx)

	if err := fn(opRepo, stockRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
