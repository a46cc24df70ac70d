package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smontiel/sellerhub-api/internal/application/auth"
	"github.com/smontiel/sellerhub-api/internal/application/identity"
	"github.com/smontiel/sellerhub-api/internal/application/ledger"
	"github.com/smontiel/sellerhub-api/internal/application/usecase"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/cache"
	"github.com/smontiel/sellerhub-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC     *usecase.WarehouseUseCase
	ProductUC       *usecase.ProductUseCase
	CreateOperation *ledger.CreateOperationUseCase
	LedgerQuery     *ledger.QueryUseCase
	AuthUC          *auth.AuthUseCase
	Resolver        *identity.Resolver
	Logger          *logger.Logger
	JWTSecret       string

	// RateLimiter es opcional: nil desactiva el limitador.
	RateLimiter       cache.Client
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	if deps.RateLimiter != nil {
		protected.Use(RateLimit(deps.RateLimiter, deps.RateLimitRequests, deps.RateLimitWindow))
	}

	// Warehouses: crear solo el seller titular; consultar también el user-seller.
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Resolver)
	warehouses.Post("/", RequireRole(entity.RoleSeller), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products: misma política que bodegas.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Resolver)
	products.Post("/", RequireRole(entity.RoleSeller), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleSeller), productHandler.Update)

	// Operaciones y libro mayor: seller y user-seller delegado.
	warehouse := protected.Group("/warehouse")
	ledgerHandler := NewLedgerHandler(deps.CreateOperation, deps.LedgerQuery, deps.Resolver, deps.Logger)
	warehouse.Post("/operations", ledgerHandler.CreateOperation)
	warehouse.Get("/operations", ledgerHandler.ListOperations)
	warehouse.Get("/ledger", ledgerHandler.QueryLedger)
}
