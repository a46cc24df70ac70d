package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseLedger es una entrada append-only del libro mayor de bodega: saldo
// corrido de cantidad y valor después de cada operación sobre (bodega, producto).
// BalanceQty/BalanceValue de la entrada N son función del saldo de la entrada N-1
// y del efecto firmado de la operación; la primera entrada del par arranca de cero.
type WarehouseLedger struct {
	ID           string
	WarehouseID  string
	ProductID    string
	OperationID  string // referencia a la WarehouseOperation que la originó
	Date         time.Time
	Type         string
	Quantity     int64
	UnitPrice    decimal.Decimal // precio de compra del producto al momento de la operación
	TotalValue   decimal.Decimal // Quantity × UnitPrice
	BalanceQty   int64
	BalanceValue decimal.Decimal
	PerformedBy  string
	Notes        string
	CreatedAt    time.Time
}
