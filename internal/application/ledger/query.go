package ledger

import (
	"context"
	"time"

	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro mayor y el log de
// operaciones: listados filtrados/paginados y resumen agregado. No muta nada;
// leer dos veces con el mismo filtro sin escrituras intermedias devuelve lo mismo.
type QueryUseCase struct {
	ledgerRepo    repository.LedgerQueryRepository
	opRepo        repository.WarehouseOperationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el servicio de consulta.
func NewQueryUseCase(
	ledgerRepo repository.LedgerQueryRepository,
	opRepo repository.WarehouseOperationRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{ledgerRepo: ledgerRepo, opRepo: opRepo, warehouseRepo: warehouseRepo}
}

const dateLayout = "2006-01-02"

// QueryLedger devuelve entradas del libro mayor (más recientes primero) con el
// resumen agregado del conjunto filtrado y las bodegas del seller para los
// selectores de la UI. Fechas malformadas → ErrInvalidInput.
func (uc *QueryUseCase) QueryLedger(ctx context.Context, actualSellerID string, q dto.LedgerQuery) (*dto.LedgerQueryResponse, error) {
	q.DefaultPage()
	if q.Type != "" && !entity.ValidOperationType(q.Type) {
		return nil, domain.ErrInvalidInput
	}

	filter := repository.LedgerFilter{
		SellerID:    actualSellerID,
		WarehouseID: q.WarehouseID,
		ProductID:   q.ProductID,
		Type:        q.Type,
	}
	if q.StartDate != "" {
		start, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Fin de día: el filtro es inclusivo sobre la fecha indicada.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	views, err := uc.ledgerRepo.Query(ctx, filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.ledgerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.ledgerRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	warehouses, err := uc.warehouseRepo.ListBySeller(actualSellerID, 100, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LedgerEntryResponse, 0, len(views))
	for _, v := range views {
		entries = append(entries, toLedgerEntryResponse(v))
	}
	whItems := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		whItems = append(whItems, dto.WarehouseResponse{
			ID: w.ID, SellerID: w.SellerID, Name: w.Name, Address: w.Address,
			CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
		})
	}

	return &dto.LedgerQueryResponse{
		LedgerEntries: entries,
		Summary: dto.LedgerSummary{
			Incoming:          totals.Incoming,
			Outgoing:          totals.Outgoing,
			Net:               totals.Incoming.Sub(totals.Outgoing),
			TotalBalanceQty:   totals.TotalBalanceQty,
			TotalBalanceValue: totals.TotalBalanceValue,
		},
		Warehouses: whItems,
		Pagination: dto.Pagination{Page: q.Page, Limit: q.Limit, Total: total},
	}, nil
}

// ListOperations lista el log de operaciones del seller (más recientes primero).
func (uc *QueryUseCase) ListOperations(ctx context.Context, actualSellerID string, q dto.OperationListQuery) (*dto.OperationListResponse, error) {
	q.DefaultPage()
	if q.Type != "" && !entity.ValidOperationType(q.Type) {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.OperationFilter{
		SellerID:    actualSellerID,
		WarehouseID: q.WarehouseID,
		ProductID:   q.ProductID,
		Type:        q.Type,
	}
	ops, err := uc.opRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.opRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperationResponse, 0, len(ops))
	for _, op := range ops {
		items = append(items, ToOperationResponse(op))
	}
	return &dto.OperationListResponse{
		Success:    true,
		Operations: items,
		Pagination: dto.Pagination{Page: q.Page, Limit: q.Limit, Total: total},
	}, nil
}

// ToOperationResponse mapea la entidad a su representación pública.
func ToOperationResponse(op *entity.WarehouseOperation) dto.OperationResponse {
	return dto.OperationResponse{
		ID:          op.ID,
		WarehouseID: op.WarehouseID,
		ProductID:   op.ProductID,
		Type:        op.Type,
		Quantity:    op.Quantity,
		Reason:      op.Reason,
		ReferenceID: op.ReferenceID,
		TransferID:  op.TransferID,
		PerformedBy: op.PerformedBy,
		CreatedAt:   op.CreatedAt,
	}
}

func toLedgerEntryResponse(v *repository.LedgerEntryView) dto.LedgerEntryResponse {
	e := v.Entry
	return dto.LedgerEntryResponse{
		ID:            e.ID,
		WarehouseID:   e.WarehouseID,
		WarehouseName: v.WarehouseName,
		ProductID:     e.ProductID,
		ProductName:   v.ProductName,
		ProductSKU:    v.ProductSKU,
		OperationID:   e.OperationID,
		Date:          e.Date,
		Type:          e.Type,
		Quantity:      e.Quantity,
		UnitPrice:     e.UnitPrice,
		TotalValue:    e.TotalValue,
		BalanceQty:    e.BalanceQty,
		BalanceValue:  e.BalanceValue,
		PerformedBy:   e.PerformedBy,
		Notes:         e.Notes,
	}
}
