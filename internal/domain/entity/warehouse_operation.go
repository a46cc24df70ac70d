package entity

import "time"

// Tipos de operación de bodega.
const (
	OperationTypeIncoming   = "INCOMING"   // entrada
	OperationTypeOutgoing   = "OUTGOING"   // salida
	OperationTypeTransfer   = "TRANSFER"   // traslado entre bodegas
	OperationTypeAdjustment = "ADJUSTMENT" // ajuste absoluto de stock
)

// ValidOperationType indica si type es uno de los cuatro tipos soportados.
func ValidOperationType(t string) bool {
	switch t {
	case OperationTypeIncoming, OperationTypeOutgoing, OperationTypeTransfer, OperationTypeAdjustment:
		return true
	}
	return false
}

// WarehouseOperation es el registro append-only de cada movimiento solicitado.
// Inmutable una vez creado; nunca se actualiza ni se borra.
// TransferID agrupa las dos operaciones (débito y crédito) de un traslado.
type WarehouseOperation struct {
	ID          string
	WarehouseID string
	ProductID   string
	Type        string
	Quantity    int64 // siempre positiva; el signo lo determina Type
	Reason      string
	ReferenceID string // correlación externa opcional
	TransferID  string // vacío salvo para TRANSFER
	PerformedBy string // usuario que ejecutó (cuenta delegada incluida)
	CreatedAt   time.Time
}
