package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
)

// WarehouseLedgerRepository define el puerto transaccional de escritura del
// libro mayor. GetLatest devuelve la entrada más reciente del par (para calcular
// el saldo siguiente); debe llamarse con el bloqueo de stock ya tomado.
type WarehouseLedgerRepository interface {
	Create(entry *entity.WarehouseLedger) error
	GetLatest(warehouseID, productID string) (*entity.WarehouseLedger, error)
}

// LedgerFilter filtros para consultar el libro mayor.
// SellerID es obligatorio; el resto es opcional.
type LedgerFilter struct {
	SellerID    string
	WarehouseID string
	ProductID   string
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
}

// LedgerEntryView entrada del libro mayor con campos de presentación
// (nombres de bodega y producto) para los listados.
type LedgerEntryView struct {
	Entry         entity.WarehouseLedger
	WarehouseName string
	ProductName   string
	ProductSKU    string
}

// LedgerTotals agregados de solo lectura sobre el conjunto filtrado:
// sumas de valor por tipo y saldos vigentes por par (bodega, producto).
type LedgerTotals struct {
	Incoming          decimal.Decimal // suma de total_value con type INCOMING
	Outgoing          decimal.Decimal // suma de total_value con type OUTGOING
	TotalBalanceQty   int64           // suma del último balance_qty por par
	TotalBalanceValue decimal.Decimal // suma del último balance_value por par
}

// LedgerQueryRepository consultas de solo lectura sobre el libro mayor
// (fuera de transacción, sobre el pool).
type LedgerQueryRepository interface {
	Query(ctx context.Context, filter LedgerFilter, limit, offset int) ([]*LedgerEntryView, error)
	Count(ctx context.Context, filter LedgerFilter) (int, error)
	Totals(ctx context.Context, filter LedgerFilter) (*LedgerTotals, error)
}
