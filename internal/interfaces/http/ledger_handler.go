package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/application/identity"
	"github.com/smontiel/sellerhub-api/internal/application/ledger"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/metrics"
	"github.com/smontiel/sellerhub-api/pkg/logger"
)

// LedgerHandler expone el motor de operaciones de bodega y las consultas del
// libro mayor. Toda petición se resuelve primero al seller efectivo: una cuenta
// user-seller opera sobre los datos de su super seller.
type LedgerHandler struct {
	createUC *ledger.CreateOperationUseCase
	queryUC  *ledger.QueryUseCase
	resolver *identity.Resolver
	log      *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	createUC *ledger.CreateOperationUseCase,
	queryUC *ledger.QueryUseCase,
	resolver *identity.Resolver,
	log *logger.Logger,
) *LedgerHandler {
	return &LedgerHandler{createUC: createUC, queryUC: queryUC, resolver: resolver, log: log}
}

// CreateOperation godoc
// @Summary      Registrar operación de bodega (INCOMING, OUTGOING, TRANSFER, ADJUSTMENT)
// @Description  Registra la operación, actualiza el stock y apendiza la entrada del libro mayor en una sola transacción. TRANSFER requiere toWarehouseId y genera débito y crédito enlazados.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "operación"
// @Success      201   {object}  dto.CreateOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/warehouse/operations [post]
func (h *LedgerHandler) CreateOperation(c *fiber.Ctx) error {
	userID, sellerID, respErr := actualSeller(c, h.resolver)
	if respErr != nil {
		return respErr
	}

	var in dto.CreateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		metrics.OperationFailuresTotal.WithLabelValues("validation").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	op, err := h.createUC.CreateOperation(c.Context(), ledger.OperationInput{
		ActualSellerID: sellerID,
		PerformedBy:    userID,
		WarehouseID:    in.WarehouseID,
		ToWarehouseID:  in.ToWarehouseID,
		ProductID:      in.ProductID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		ReferenceID:    in.ReferenceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.OperationFailuresTotal.WithLabelValues("validation").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operación inválida"})
		case errors.Is(err, domain.ErrNotFound):
			metrics.OperationFailuresTotal.WithLabelValues("not_found").Inc()
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega o producto no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.OperationFailuresTotal.WithLabelValues("conflict").Inc()
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en bodega origen"})
		case errors.Is(err, domain.ErrConflict):
			metrics.OperationFailuresTotal.WithLabelValues("conflict").Inc()
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
		}
		metrics.OperationFailuresTotal.WithLabelValues("internal").Inc()
		h.log.Error().Err(err).
			Str("seller_id", sellerID).
			Str("type", in.Type).
			Msg("fallo registrando operación de bodega")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	metrics.OperationsTotal.WithLabelValues(op.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.CreateOperationResponse{
		Success:   true,
		Operation: ledger.ToOperationResponse(op),
	})
}

// ListOperations godoc
// @Summary      Listar operaciones de bodega del seller
// @Tags         warehouse
// @Produce      json
// @Param        warehouseId  query  string  false  "filtrar por bodega"
// @Param        productId    query  string  false  "filtrar por producto"
// @Param        type         query  string  false  "INCOMING | OUTGOING | TRANSFER | ADJUSTMENT"
// @Param        page         query  int     false  "página (desde 1)"
// @Param        limit        query  int     false  "tamaño de página"
// @Success      200  {object}  dto.OperationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/warehouse/operations [get]
func (h *LedgerHandler) ListOperations(c *fiber.Ctx) error {
	_, sellerID, respErr := actualSeller(c, h.resolver)
	if respErr != nil {
		return respErr
	}

	var q dto.OperationListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.ListOperations(c.Context(), sellerID, q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de operación inválido"})
		}
		h.log.Error().Err(err).Str("seller_id", sellerID).Msg("fallo listando operaciones")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// QueryLedger godoc
// @Summary      Consultar el libro mayor de bodega
// @Description  Entradas más recientes primero, con resumen agregado (entradas, salidas, neto y saldos vigentes) y las bodegas del seller.
// @Tags         warehouse
// @Produce      json
// @Param        warehouseId  query  string  false  "filtrar por bodega"
// @Param        productId    query  string  false  "filtrar por producto"
// @Param        type         query  string  false  "INCOMING | OUTGOING | TRANSFER | ADJUSTMENT"
// @Param        startDate    query  string  false  "desde, formato 2006-01-02"
// @Param        endDate      query  string  false  "hasta (inclusive), formato 2006-01-02"
// @Param        page         query  int     false  "página (desde 1)"
// @Param        limit        query  int     false  "tamaño de página"
// @Success      200  {object}  dto.LedgerQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/warehouse/ledger [get]
func (h *LedgerHandler) QueryLedger(c *fiber.Ctx) error {
	_, sellerID, respErr := actualSeller(c, h.resolver)
	if respErr != nil {
		return respErr
	}

	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.QueryLedger(c.Context(), sellerID, q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos (tipo o fechas)"})
		}
		h.log.Error().Err(err).Str("seller_id", sellerID).Msg("fallo consultando libro mayor")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
