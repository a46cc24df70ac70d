package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOperationRequest body para POST /api/warehouse/operations.
// ToWarehouseID es obligatorio (y solo válido) cuando type es TRANSFER;
// en ese caso WarehouseID es la bodega origen.
type CreateOperationRequest struct {
	WarehouseID   string `json:"warehouseId"`
	ProductID     string `json:"productId"`
	ToWarehouseID string `json:"toWarehouseId,omitempty"`
	Type          string `json:"type"`
	Quantity      int64  `json:"quantity"`
	Reason        string `json:"reason,omitempty"`
	ReferenceID   string `json:"referenceId,omitempty"`
}

// OperationResponse representación pública de una operación registrada.
type OperationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouseId"`
	ProductID   string    `json:"productId"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	ReferenceID string    `json:"referenceId,omitempty"`
	TransferID  string    `json:"transferId,omitempty"`
	PerformedBy string    `json:"performedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateOperationResponse respuesta 201 de POST /api/warehouse/operations.
type CreateOperationResponse struct {
	Success   bool              `json:"success"`
	Operation OperationResponse `json:"operation"`
}

// OperationListResponse respuesta de GET /api/warehouse/operations.
type OperationListResponse struct {
	Success    bool                `json:"success"`
	Operations []OperationResponse `json:"operations"`
	Pagination Pagination          `json:"pagination"`
}

// OperationListQuery filtros de GET /api/warehouse/operations.
type OperationListQuery struct {
	WarehouseID string `query:"warehouseId"`
	ProductID   string `query:"productId"`
	Type        string `query:"type"`
	PageRequest
}

// LedgerQuery filtros de GET /api/warehouse/ledger. Fechas en formato 2006-01-02.
type LedgerQuery struct {
	WarehouseID string `query:"warehouseId"`
	ProductID   string `query:"productId"`
	Type        string `query:"type"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	PageRequest
}

// LedgerEntryResponse entrada del libro mayor con campos de presentación.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	WarehouseID   string          `json:"warehouseId"`
	WarehouseName string          `json:"warehouseName"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductSKU    string          `json:"productSku"`
	OperationID   string          `json:"operationId"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	BalanceQty    int64           `json:"balanceQty"`
	BalanceValue  decimal.Decimal `json:"balanceValue"`
	PerformedBy   string          `json:"performedBy"`
	Notes         string          `json:"notes,omitempty"`
}

// LedgerSummary agregados sobre el conjunto filtrado.
type LedgerSummary struct {
	Incoming          decimal.Decimal `json:"incoming"`
	Outgoing          decimal.Decimal `json:"outgoing"`
	Net               decimal.Decimal `json:"net"`
	TotalBalanceQty   int64           `json:"totalBalanceQty"`
	TotalBalanceValue decimal.Decimal `json:"totalBalanceValue"`
}

// LedgerQueryResponse respuesta de GET /api/warehouse/ledger.
type LedgerQueryResponse struct {
	LedgerEntries []LedgerEntryResponse `json:"ledgerEntries"`
	Summary       LedgerSummary         `json:"summary"`
	Warehouses    []WarehouseResponse   `json:"warehouses"`
	Pagination    Pagination            `json:"pagination"`
}
