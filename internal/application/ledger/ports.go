package ledger

import (
	"context"

	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor del libro
// mayor: log de operación, stock y entrada de saldo se confirman juntos o
// ninguno. La implementación reintenta una vez el callback completo ante
// fallos transitorios (serialización, deadlock, desconexión).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.WarehouseOperationRepository,
		stockRepo repository.WarehouseStockRepository,
		ledgerRepo repository.WarehouseLedgerRepository,
	) error) error
}
