package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smontiel/sellerhub-api/internal/application/ledger"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El motor se prueba contra implementaciones en memoria de los puertos: el
// TxRunner falso ejecuta el callback directamente (sin BD), y los repos guardan
// estado en mapas. Así los tests verifican la aritmética de stock y saldo
// corrido, el enlace de TRANSFER y el orden de bloqueo sin tocar PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

const (
	sellerA = "00000000-0000-0000-0000-00000000000a"
	sellerB = "00000000-0000-0000-0000-00000000000b"
	whMain  = "10000000-0000-0000-0000-000000000001"
	whSec   = "10000000-0000-0000-0000-000000000002"
	prodTV  = "20000000-0000-0000-0000-000000000001"
	userOp  = "30000000-0000-0000-0000-000000000001"
)

func stockKey(warehouseID, productID string) string {
	return warehouseID + "|" + productID
}

type fakeOpRepo struct {
	ops []*entity.WarehouseOperation
}

func (r *fakeOpRepo) Create(op *entity.WarehouseOperation) error {
	r.ops = append(r.ops, op)
	return nil
}

func (r *fakeOpRepo) List(_ repository.OperationFilter, _, _ int) ([]*entity.WarehouseOperation, error) {
	return r.ops, nil
}

func (r *fakeOpRepo) Count(_ repository.OperationFilter) (int, error) {
	return len(r.ops), nil
}

// callLog registra la secuencia de llamadas entre repos para verificar el
// orden bloqueo → lectura de saldo dentro de la transacción.
type callLog struct {
	calls []string
}

type fakeStockRepo struct {
	rows map[string]*entity.WarehouseStock
	log  *callLog
	// lockOrder registra el orden en que se pidieron los bloqueos de fila.
	lockOrder []string
}

func newFakeStockRepo(log *callLog) *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.WarehouseStock), log: log}
}

// Get helper de aserción: cero si la fila no existe, igual que la consulta real.
func (r *fakeStockRepo) Get(warehouseID, productID string) (*entity.WarehouseStock, error) {
	if row, ok := r.rows[stockKey(warehouseID, productID)]; ok {
		return row, nil
	}
	return &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID}, nil
}

func (r *fakeStockRepo) GetOrCreateForUpdate(warehouseID, productID string) (*entity.WarehouseStock, error) {
	r.lockOrder = append(r.lockOrder, warehouseID)
	r.log.calls = append(r.log.calls, "lock:"+warehouseID)
	key := stockKey(warehouseID, productID)
	if row, ok := r.rows[key]; ok {
		return row, nil
	}
	row := &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID, Quantity: 0}
	r.rows[key] = row
	return row, nil
}

func (r *fakeStockRepo) UpdateQuantity(warehouseID, productID string, quantity int64) error {
	r.rows[stockKey(warehouseID, productID)].Quantity = quantity
	return nil
}

type fakeLedgerRepo struct {
	entries map[string][]*entity.WarehouseLedger
	log     *callLog
	// createErr simula un fallo de escritura del libro mayor. Con failAt > 0
	// el fallo ocurre recién en esa llamada a Create (contadas desde 1).
	createErr   error
	failAt      int
	createCalls int
}

func newFakeLedgerRepo(log *callLog) *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[string][]*entity.WarehouseLedger), log: log}
}

func (r *fakeLedgerRepo) Create(entry *entity.WarehouseLedger) error {
	r.createCalls++
	if r.createErr != nil && (r.failAt == 0 || r.createCalls == r.failAt) {
		return r.createErr
	}
	key := stockKey(entry.WarehouseID, entry.ProductID)
	r.entries[key] = append(r.entries[key], entry)
	return nil
}

func (r *fakeLedgerRepo) GetLatest(warehouseID, productID string) (*entity.WarehouseLedger, error) {
	r.log.calls = append(r.log.calls, "read:"+warehouseID)
	list := r.entries[stockKey(warehouseID, productID)]
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

// fakeTxRunner ejecuta el callback con semántica transaccional: toma una foto
// del estado de los tres repos y, si el callback falla, la restaura (rollback).
// runErr simula una transacción que no pudo confirmarse (p. ej. reintento
// agotado por serialización).
type fakeTxRunner struct {
	opRepo     *fakeOpRepo
	stockRepo  *fakeStockRepo
	ledgerRepo *fakeLedgerRepo
	runErr     error
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	opRepo repository.WarehouseOperationRepository,
	stockRepo repository.WarehouseStockRepository,
	ledgerRepo repository.WarehouseLedgerRepository,
) error) error {
	if r.runErr != nil {
		return r.runErr
	}

	opsSnap := append([]*entity.WarehouseOperation(nil), r.opRepo.ops...)
	stockSnap := make(map[string]*entity.WarehouseStock, len(r.stockRepo.rows))
	for k, v := range r.stockRepo.rows {
		copied := *v
		stockSnap[k] = &copied
	}
	ledgerSnap := make(map[string][]*entity.WarehouseLedger, len(r.ledgerRepo.entries))
	for k, v := range r.ledgerRepo.entries {
		ledgerSnap[k] = append([]*entity.WarehouseLedger(nil), v...)
	}

	if err := fn(r.opRepo, r.stockRepo, r.ledgerRepo); err != nil {
		r.opRepo.ops = opsSnap
		r.stockRepo.rows = stockSnap
		r.ledgerRepo.entries = ledgerSnap
		return err
	}
	return nil
}

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.byID[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.byID[id], nil
}
func (r *fakeWarehouseRepo) ListBySeller(_ string, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) ListBySeller(_ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type engineFixture struct {
	uc     *ledger.CreateOperationUseCase
	ops    *fakeOpRepo
	stock  *fakeStockRepo
	ledger *fakeLedgerRepo
	runner *fakeTxRunner
	log    *callLog
}

// newEngine arma el motor con dos bodegas y un producto (precio de compra 10.00)
// del sellerA, más una bodega de sellerB para los casos de propiedad.
func newEngine(t *testing.T) *engineFixture {
	t.Helper()

	log := &callLog{}
	ops := &fakeOpRepo{}
	stock := newFakeStockRepo(log)
	ledgerRepo := newFakeLedgerRepo(log)
	runner := &fakeTxRunner{opRepo: ops, stockRepo: stock, ledgerRepo: ledgerRepo}

	warehouses := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		whMain: {ID: whMain, SellerID: sellerA, Name: "Bodega Principal"},
		whSec:  {ID: whSec, SellerID: sellerA, Name: "Bodega Secundaria"},
		"wh-otro-seller": {ID: "wh-otro-seller", SellerID: sellerB, Name: "Ajena"},
	}}
	products := &fakeProductRepo{byID: map[string]*entity.Product{
		prodTV: {ID: prodTV, SellerID: sellerA, SKU: "TV-55", Name: "Televisor 55", PurchasePrice: decimal.RequireFromString("10.00")},
	}}

	return &engineFixture{
		uc:     ledger.NewCreateOperationUseCase(runner, warehouses, products),
		ops:    ops,
		stock:  stock,
		ledger: ledgerRepo,
		runner: runner,
		log:    log,
	}
}

func (f *engineFixture) run(t *testing.T, opType string, qty int64) *entity.WarehouseOperation {
	t.Helper()
	op, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA,
		PerformedBy:    userOp,
		WarehouseID:    whMain,
		ProductID:      prodTV,
		Type:           opType,
		Quantity:       qty,
	})
	require.NoError(t, err)
	return op
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOperation_CantidadInvalida(t *testing.T) {
	f := newEngine(t)
	for _, qty := range []int64{0, -5} {
		_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
			ActualSellerID: sellerA, PerformedBy: userOp,
			WarehouseID: whMain, ProductID: prodTV,
			Type: entity.OperationTypeIncoming, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
	assert.Empty(t, f.ops.ops, "una operación rechazada no debe persistir nada")
}

func TestCreateOperation_TipoInvalido(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ProductID: prodTV,
		Type: "VENTA", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOperation_TransferSinDestino(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ProductID: prodTV,
		Type: entity.OperationTypeTransfer, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "TRANSFER requiere toWarehouseId")
}

func TestCreateOperation_TransferMismaBodega(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ToWarehouseID: whMain, ProductID: prodTV,
		Type: entity.OperationTypeTransfer, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino deben ser distintos")
}

func TestCreateOperation_DestinoSoloParaTransfer(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ToWarehouseID: whSec, ProductID: prodTV,
		Type: entity.OperationTypeIncoming, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "toWarehouseId solo es válido en TRANSFER")
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad: bodega y producto deben pertenecer al seller efectivo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOperation_BodegaDeOtroSeller(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: "wh-otro-seller", ProductID: prodTV,
		Type: entity.OperationTypeIncoming, Quantity: 1,
	})
	// Misma respuesta que "no existe": no se filtra la existencia del recurso.
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOperation_BodegaInexistente(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: "no-existe", ProductID: prodTV,
		Type: entity.OperationTypeIncoming, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOperation_ProductoInexistente(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ProductID: "no-existe",
		Type: entity.OperationTypeIncoming, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// INCOMING / OUTGOING / ADJUSTMENT: stock y saldo corrido
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOperation_IncomingSiembraStockYSaldo(t *testing.T) {
	f := newEngine(t)
	op := f.run(t, entity.OperationTypeIncoming, 10)

	assert.Equal(t, entity.OperationTypeIncoming, op.Type)
	assert.Equal(t, userOp, op.PerformedBy, "performed_by debe ser el usuario crudo, no el seller")

	stock, _ := f.stock.Get(whMain, prodTV)
	require.NotNil(t, stock, "la fila de stock debe materializarse aunque no existiera")
	assert.EqualValues(t, 10, stock.Quantity)

	entry, _ := f.ledger.GetLatest(whMain, prodTV)
	require.NotNil(t, entry)
	assert.EqualValues(t, 10, entry.BalanceQty)
	assert.True(t, entry.BalanceValue.Equal(decimal.RequireFromString("100.00")),
		"saldo valorizado = 10 unidades * 10.00, fue %s", entry.BalanceValue)
	assert.True(t, entry.TotalValue.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, op.ID, entry.OperationID, "la entrada debe referenciar la operación")
}

func TestCreateOperation_SaldoCorridoAcumula(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)
	f.run(t, entity.OperationTypeIncoming, 5)
	f.run(t, entity.OperationTypeOutgoing, 3)

	stock, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 12, stock.Quantity)

	entry, _ := f.ledger.GetLatest(whMain, prodTV)
	require.NotNil(t, entry)
	assert.EqualValues(t, 12, entry.BalanceQty, "10 + 5 - 3")
	assert.True(t, entry.BalanceValue.Equal(decimal.RequireFromString("120.00")))

	// Tres operaciones → tres entradas append-only, ninguna mutada.
	assert.Len(t, f.ledger.entries[stockKey(whMain, prodTV)], 3)
}

func TestCreateOperation_OutgoingSobreSaldoQuedaEnCero(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 5)
	op := f.run(t, entity.OperationTypeOutgoing, 50)

	// La salida por encima del disponible se acepta y el saldo se acota en cero.
	stock, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 0, stock.Quantity)

	entry, _ := f.ledger.GetLatest(whMain, prodTV)
	require.NotNil(t, entry)
	assert.EqualValues(t, 0, entry.BalanceQty)
	assert.True(t, entry.BalanceValue.IsZero(), "el saldo valorizado también se acota en cero")
	assert.EqualValues(t, 50, op.Quantity, "la operación registra la cantidad pedida, no la recortada")
}

func TestCreateOperation_AdjustmentFijaCantidadAbsoluta(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 100)
	f.run(t, entity.OperationTypeAdjustment, 7)

	stock, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 7, stock.Quantity, "ADJUSTMENT fija, no suma")

	entry, _ := f.ledger.GetLatest(whMain, prodTV)
	require.NotNil(t, entry)
	assert.EqualValues(t, 7, entry.BalanceQty)
	assert.True(t, entry.BalanceValue.Equal(decimal.RequireFromString("70.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// TRANSFER: débito y crédito enlazados
// ──────────────────────────────────────────────────────────────────────────────

func transferInput(qty int64) ledger.OperationInput {
	return ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ToWarehouseID: whSec, ProductID: prodTV,
		Type: entity.OperationTypeTransfer, Quantity: qty,
	}
}

func TestCreateOperation_TransferMueveStockYEnlazaOperaciones(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)

	debit, err := f.uc.CreateOperation(context.Background(), transferInput(4))
	require.NoError(t, err)

	// Devuelve el débito (la operación sobre la bodega origen).
	assert.Equal(t, whMain, debit.WarehouseID)
	assert.NotEmpty(t, debit.TransferID)

	src, _ := f.stock.Get(whMain, prodTV)
	dst, _ := f.stock.Get(whSec, prodTV)
	assert.EqualValues(t, 6, src.Quantity)
	assert.EqualValues(t, 4, dst.Quantity)

	// Dos operaciones TRANSFER con el mismo transfer id.
	require.Len(t, f.ops.ops, 3, "1 INCOMING + débito + crédito")
	credit := f.ops.ops[2]
	assert.Equal(t, whSec, credit.WarehouseID)
	assert.Equal(t, entity.OperationTypeTransfer, credit.Type)
	assert.Equal(t, debit.TransferID, credit.TransferID)

	// Cada bodega recibe su entrada del libro mayor con el tipo TRANSFER
	// registrado pero el saldo calculado con la regla de su lado.
	srcEntry, _ := f.ledger.GetLatest(whMain, prodTV)
	dstEntry, _ := f.ledger.GetLatest(whSec, prodTV)
	require.NotNil(t, srcEntry)
	require.NotNil(t, dstEntry)
	assert.Equal(t, entity.OperationTypeTransfer, srcEntry.Type)
	assert.Equal(t, entity.OperationTypeTransfer, dstEntry.Type)
	assert.EqualValues(t, 6, srcEntry.BalanceQty)
	assert.EqualValues(t, 4, dstEntry.BalanceQty)
	assert.True(t, srcEntry.BalanceValue.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, dstEntry.BalanceValue.Equal(decimal.RequireFromString("40.00")))
}

func TestCreateOperation_TransferSinStockSuficiente(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 3)

	opsBefore := len(f.ops.ops)
	_, err := f.uc.CreateOperation(context.Background(), transferInput(10))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se mueve: ni operaciones nuevas ni stock tocado.
	assert.Len(t, f.ops.ops, opsBefore)
	src, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 3, src.Quantity)
}

func TestCreateOperation_TransferDestinoDeOtroSeller(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)

	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ToWarehouseID: "wh-otro-seller", ProductID: prodTV,
		Type: entity.OperationTypeTransfer, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOperation_TransferBloqueaEnOrdenEstable(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)
	_, err := f.uc.CreateOperation(context.Background(), transferInput(5))
	require.NoError(t, err)

	// Traslado en sentido contrario (whSec → whMain): los bloqueos deben
	// pedirse igualmente en orden lexicográfico de bodega para evitar
	// deadlocks entre traslados cruzados.
	f.stock.lockOrder = nil
	_, err = f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whSec, ToWarehouseID: whMain, ProductID: prodTV,
		Type: entity.OperationTypeTransfer, Quantity: 2,
	})
	require.NoError(t, err)

	require.Len(t, f.stock.lockOrder, 2)
	assert.Equal(t, []string{whMain, whSec}, f.stock.lockOrder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: log de operación, stock y libro mayor se confirman juntos o ninguno
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOperation_FalloDelLibroMayorRevierteTodo(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)

	// La escritura del libro mayor falla a mitad de la transacción: la
	// operación ya creada y el stock ya actualizado deben revertirse.
	boom := errors.New("fallo de escritura")
	f.ledger.createErr = boom

	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ProductID: prodTV,
		Type: entity.OperationTypeIncoming, Quantity: 5,
	})
	require.ErrorIs(t, err, boom, "el error de la transacción debe propagarse")

	assert.Len(t, f.ops.ops, 1, "la operación fallida no debe quedar en el log")
	stock, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 10, stock.Quantity, "el stock vuelve al valor previo")
	assert.Len(t, f.ledger.entries[stockKey(whMain, prodTV)], 1,
		"el libro mayor conserva solo la entrada confirmada")
}

func TestCreateOperation_FalloEnTransferNoDejaMitades(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)

	// El fallo ocurre recién en la entrada del crédito: el débito ya aplicado
	// en origen también debe revertirse, nunca queda media transferencia.
	boom := errors.New("fallo en el crédito")
	f.ledger.createErr = boom
	f.ledger.failAt = f.ledger.createCalls + 2 // el débito pasa, el crédito falla

	_, err := f.uc.CreateOperation(context.Background(), transferInput(4))
	require.ErrorIs(t, err, boom)

	src, _ := f.stock.Get(whMain, prodTV)
	assert.EqualValues(t, 10, src.Quantity, "el débito en origen se revierte")
	dst, _ := f.stock.Get(whSec, prodTV)
	assert.EqualValues(t, 0, dst.Quantity, "el destino no recibe nada")
	assert.Len(t, f.ops.ops, 1, "ni débito ni crédito quedan en el log")
	assert.Len(t, f.ledger.entries[stockKey(whMain, prodTV)], 1,
		"el libro mayor de origen conserva solo la entrada del INCOMING inicial")
	assert.Empty(t, f.ledger.entries[stockKey(whSec, prodTV)])
}

func TestCreateOperation_ConflictoDeSerializacionSePropaga(t *testing.T) {
	f := newEngine(t)
	// El runner agotó su reintento por fallo de serialización y reporta
	// ErrConflict; el motor lo propaga sin envolver para que el handler
	// responda 409.
	f.runner.runErr = domain.ErrConflict

	_, err := f.uc.CreateOperation(context.Background(), ledger.OperationInput{
		ActualSellerID: sellerA, PerformedBy: userOp,
		WarehouseID: whMain, ProductID: prodTV,
		Type: entity.OperationTypeIncoming, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden bloqueo → lectura: el saldo previo siempre se lee con la fila bloqueada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOperation_BloqueaAntesDeLeerSaldo(t *testing.T) {
	f := newEngine(t)
	f.run(t, entity.OperationTypeIncoming, 10)

	// En cada operación el bloqueo de la fila de stock precede a la lectura de
	// la última entrada del libro mayor: es lo que serializa dos INCOMING
	// concurrentes del mismo par (el segundo espera el commit del primero y ve
	// su saldo, 10 y luego 20, nunca 10 y 10).
	f.log.calls = nil
	f.run(t, entity.OperationTypeIncoming, 10)

	require.Equal(t, []string{"lock:" + whMain, "read:" + whMain}, f.log.calls)

	entry, _ := f.ledger.GetLatest(whMain, prodTV)
	assert.EqualValues(t, 20, entry.BalanceQty, "el segundo INCOMING parte del saldo del primero")
}
