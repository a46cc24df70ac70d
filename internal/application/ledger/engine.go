package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// CreateOperationUseCase registra operaciones de bodega de forma transaccional
// (INCOMING, OUTGOING, TRANSFER, ADJUSTMENT): apendiza el log de operación,
// actualiza el stock y apendiza la entrada del libro mayor con el saldo corrido,
// todo con bloqueo de fila sobre warehouse_stock y Commit/Rollback.
type CreateOperationUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewCreateOperationUseCase construye el motor del libro mayor.
func NewCreateOperationUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
) *CreateOperationUseCase {
	return &CreateOperationUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// OperationInput entrada para registrar una operación de bodega.
// ActualSellerID es el seller dueño efectivo (ya resuelto por identity.Resolver);
// PerformedBy es el usuario que ejecuta, que puede ser una cuenta delegada.
// Para TRANSFER: WarehouseID es la bodega origen y ToWarehouseID la destino.
type OperationInput struct {
	ActualSellerID string
	PerformedBy    string
	WarehouseID    string
	ToWarehouseID  string
	ProductID      string
	Type           string
	Quantity       int64
	Reason         string
	ReferenceID    string
}

// CreateOperation valida la entrada y la propiedad de bodega/producto, y luego
// ejecuta dentro de una transacción: (1) crea la WarehouseOperation, (2) toma el
// bloqueo de la fila de stock y actualiza la cantidad según el tipo, (3) lee la
// última entrada del libro mayor del par y apendiza la nueva con el saldo corrido.
// Para TRANSFER genera dos operaciones y dos entradas enlazadas (débito en origen,
// crédito en destino) compartiendo un transfer id; devuelve la operación de débito.
func (uc *CreateOperationUseCase) CreateOperation(ctx context.Context, input OperationInput) (*entity.WarehouseOperation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Propiedad: bodega(s) y producto deben pertenecer al seller efectivo.
	// No se distingue "no existe" de "no es tuyo" para no filtrar existencia.
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.SellerID != input.ActualSellerID {
		return nil, domain.ErrNotFound
	}
	if input.Type == entity.OperationTypeTransfer {
		dest, err := uc.warehouseRepo.GetByID(input.ToWarehouseID)
		if err != nil {
			return nil, err
		}
		if dest == nil || dest.SellerID != input.ActualSellerID {
			return nil, domain.ErrNotFound
		}
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SellerID != input.ActualSellerID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created *entity.WarehouseOperation

	err = uc.txRunner.Run(ctx, func(
		opRepo repository.WarehouseOperationRepository,
		stockRepo repository.WarehouseStockRepository,
		ledgerRepo repository.WarehouseLedgerRepository,
	) error {
		var err error
		if input.Type == entity.OperationTypeTransfer {
			created, err = uc.doTransfer(opRepo, stockRepo, ledgerRepo, product, input, now)
		} else {
			created, err = uc.doSingle(opRepo, stockRepo, ledgerRepo, product, input, now)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func validateInput(input OperationInput) error {
	if input.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidOperationType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.WarehouseID == "" || input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.OperationTypeTransfer {
		if input.ToWarehouseID == "" || input.ToWarehouseID == input.WarehouseID {
			return domain.ErrInvalidInput
		}
	} else if input.ToWarehouseID != "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// doSingle aplica INCOMING, OUTGOING o ADJUSTMENT sobre una sola bodega.
// OUTGOING por encima del saldo se acepta y el stock/saldo quedan en cero
// (política de clamp, no error). ADJUSTMENT fija la cantidad en absoluto.
func (uc *CreateOperationUseCase) doSingle(
	opRepo repository.WarehouseOperationRepository,
	stockRepo repository.WarehouseStockRepository,
	ledgerRepo repository.WarehouseLedgerRepository,
	product *entity.Product,
	input OperationInput,
	now time.Time,
) (*entity.WarehouseOperation, error) {
	// Bloquea la fila de stock (materializada en cero si no existe): serializa
	// todo read-modify-write concurrente sobre el par (bodega, producto).
	stock, err := stockRepo.GetOrCreateForUpdate(input.WarehouseID, input.ProductID)
	if err != nil {
		return nil, err
	}

	unitPrice := product.PurchasePrice
	totalValue := unitPrice.Mul(decimal.NewFromInt(input.Quantity))

	op := &entity.WarehouseOperation{
		ID:          uuid.New().String(),
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		ReferenceID: input.ReferenceID,
		PerformedBy: input.PerformedBy,
		CreatedAt:   now,
	}
	if err := opRepo.Create(op); err != nil {
		return nil, err
	}

	var newQty int64
	switch input.Type {
	case entity.OperationTypeIncoming:
		newQty = stock.Quantity + input.Quantity
	case entity.OperationTypeOutgoing:
		newQty = clampQty(stock.Quantity - input.Quantity)
	case entity.OperationTypeAdjustment:
		newQty = input.Quantity
	}
	if err := stockRepo.UpdateQuantity(input.WarehouseID, input.ProductID, newQty); err != nil {
		return nil, err
	}

	if err := uc.appendEntry(ledgerRepo, op, input.Type, newQty, unitPrice, totalValue, input.Reason, now); err != nil {
		return nil, err
	}
	return op, nil
}

// doTransfer resta de la bodega origen y suma en la destino dentro de la misma
// transacción: dos operaciones y dos entradas del libro mayor compartiendo un
// transfer id. El débito sigue la regla OUTGOING y el crédito la regla INCOMING,
// cada uno contra el saldo previo de su propia bodega. Un traslado sin stock
// suficiente en origen se rechaza: el clamp crearía stock de la nada en destino.
func (uc *CreateOperationUseCase) doTransfer(
	opRepo repository.WarehouseOperationRepository,
	stockRepo repository.WarehouseStockRepository,
	ledgerRepo repository.WarehouseLedgerRepository,
	product *entity.Product,
	input OperationInput,
	now time.Time,
) (*entity.WarehouseOperation, error) {
	// Bloquear ambas filas en orden estable por id de bodega para no
	// interbloquearse con un traslado concurrente en sentido contrario.
	firstID, secondID := input.WarehouseID, input.ToWarehouseID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	locked := make(map[string]*entity.WarehouseStock, 2)
	for _, whID := range []string{firstID, secondID} {
		stock, err := stockRepo.GetOrCreateForUpdate(whID, input.ProductID)
		if err != nil {
			return nil, err
		}
		locked[whID] = stock
	}
	source := locked[input.WarehouseID]
	dest := locked[input.ToWarehouseID]

	if source.Quantity < input.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	unitPrice := product.PurchasePrice
	totalValue := unitPrice.Mul(decimal.NewFromInt(input.Quantity))
	transferID := uuid.New().String()

	newOp := func(warehouseID string) *entity.WarehouseOperation {
		return &entity.WarehouseOperation{
			ID:          uuid.New().String(),
			WarehouseID: warehouseID,
			ProductID:   input.ProductID,
			Type:        entity.OperationTypeTransfer,
			Quantity:    input.Quantity,
			Reason:      input.Reason,
			ReferenceID: input.ReferenceID,
			TransferID:  transferID,
			PerformedBy: input.PerformedBy,
			CreatedAt:   now,
		}
	}

	// Débito en origen (regla OUTGOING).
	debit := newOp(input.WarehouseID)
	if err := opRepo.Create(debit); err != nil {
		return nil, err
	}
	srcQty := source.Quantity - input.Quantity
	if err := stockRepo.UpdateQuantity(input.WarehouseID, input.ProductID, srcQty); err != nil {
		return nil, err
	}
	if err := uc.appendEntry(ledgerRepo, debit, entity.OperationTypeOutgoing, srcQty, unitPrice, totalValue, input.Reason, now); err != nil {
		return nil, err
	}

	// Crédito en destino (regla INCOMING).
	credit := newOp(input.ToWarehouseID)
	if err := opRepo.Create(credit); err != nil {
		return nil, err
	}
	dstQty := dest.Quantity + input.Quantity
	if err := stockRepo.UpdateQuantity(input.ToWarehouseID, input.ProductID, dstQty); err != nil {
		return nil, err
	}
	if err := uc.appendEntry(ledgerRepo, credit, entity.OperationTypeIncoming, dstQty, unitPrice, totalValue, input.Reason, now); err != nil {
		return nil, err
	}

	return debit, nil
}

// appendEntry calcula el saldo corrido a partir de la última entrada del par y
// apendiza la nueva. balanceRule es la regla aritmética a aplicar (para TRANSFER
// difiere del tipo registrado: OUTGOING en origen, INCOMING en destino).
func (uc *CreateOperationUseCase) appendEntry(
	ledgerRepo repository.WarehouseLedgerRepository,
	op *entity.WarehouseOperation,
	balanceRule string,
	newQty int64,
	unitPrice, totalValue decimal.Decimal,
	notes string,
	now time.Time,
) error {
	prior, err := ledgerRepo.GetLatest(op.WarehouseID, op.ProductID)
	if err != nil {
		return err
	}
	balanceQty, balanceValue := nextBalance(prior, balanceRule, op.Quantity, newQty, unitPrice, totalValue)
	entry := &entity.WarehouseLedger{
		ID:           uuid.New().String(),
		WarehouseID:  op.WarehouseID,
		ProductID:    op.ProductID,
		OperationID:  op.ID,
		Date:         now,
		Type:         op.Type,
		Quantity:     op.Quantity,
		UnitPrice:    unitPrice,
		TotalValue:   totalValue,
		BalanceQty:   balanceQty,
		BalanceValue: balanceValue,
		PerformedBy:  op.PerformedBy,
		Notes:        notes,
		CreatedAt:    now,
	}
	return ledgerRepo.Create(entry)
}

// nextBalance aplica la regla de saldo por tipo. Sin entrada previa, el saldo
// arranca del stock recién calculado (la primera entrada del par siembra desde
// cero). Con entrada previa:
//   - INCOMING: saldo previo + cantidad / + valor total.
//   - OUTGOING: saldo previo − cantidad / − valor total, acotado en cero.
//   - ADJUSTMENT: cantidad y valor absolutos, ignorando el saldo previo.
func nextBalance(prior *entity.WarehouseLedger, rule string, qty, newQty int64, unitPrice, totalValue decimal.Decimal) (int64, decimal.Decimal) {
	if prior == nil {
		return newQty, unitPrice.Mul(decimal.NewFromInt(newQty))
	}
	switch rule {
	case entity.OperationTypeIncoming:
		return prior.BalanceQty + qty, prior.BalanceValue.Add(totalValue)
	case entity.OperationTypeOutgoing:
		return clampQty(prior.BalanceQty - qty), clampValue(prior.BalanceValue.Sub(totalValue))
	case entity.OperationTypeAdjustment:
		return qty, unitPrice.Mul(decimal.NewFromInt(qty))
	}
	return newQty, unitPrice.Mul(decimal.NewFromInt(newQty))
}

func clampQty(q int64) int64 {
	if q < 0 {
		return 0
	}
	return q
}

func clampValue(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
