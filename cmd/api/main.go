package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/smontiel/sellerhub-api/internal/application/auth"
	"github.com/smontiel/sellerhub-api/internal/application/identity"
	"github.com/smontiel/sellerhub-api/internal/application/ledger"
	"github.com/smontiel/sellerhub-api/internal/application/usecase"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/cache"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/metrics"
	"github.com/smontiel/sellerhub-api/internal/infrastructure/postgres"
	httpRouter "github.com/smontiel/sellerhub-api/internal/interfaces/http"
	"github.com/smontiel/sellerhub-api/pkg/config"
	"github.com/smontiel/sellerhub-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	operationRepo := postgres.NewWarehouseOperationRepository(pool)
	ledgerQueryRepo := postgres.NewLedgerQueryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := identity.NewResolver(userRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	createOperationUC := ledger.NewCreateOperationUseCase(txRunner, warehouseRepo, productRepo)
	ledgerQueryUC := ledger.NewQueryUseCase(ledgerQueryRepo, operationRepo, warehouseRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Redis solo para el rate limiter; sin Redis el API arranca sin limitador.
	var limiter cache.Client
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		limiter = redisClient
	}

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("servidor de métricas iniciado")
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SellerHub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:       warehouseUC,
		ProductUC:         productUC,
		CreateOperation:   createOperationUC,
		LedgerQuery:       ledgerQueryUC,
		AuthUC:            authUC,
		Resolver:          resolver,
		Logger:            log,
		JWTSecret:         cfg.JWT.Secret,
		RateLimiter:       limiter,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
