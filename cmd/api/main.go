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

	"github.com/tu-usuario/imprenta-pos/internal/application/catalogue"
	"github.com/tu-usuario/imprenta-pos/internal/application/stock"
	"github.com/tu-usuario/imprenta-pos/internal/application/stores"
	"github.com/tu-usuario/imprenta-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/imprenta-pos/internal/interfaces/http"
	"github.com/tu-usuario/imprenta-pos/pkg/config"
	"github.com/tu-usuario/imprenta-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	totalRepo := postgres.NewUsageTotalRepository(pool)
	usageEventRepo := postgres.NewUsageEventRepository(pool)
	adjustmentEventRepo := postgres.NewAdjustmentEventRepository(pool)
	transferEventRepo := postgres.NewTransferEventRepository(pool)
	taskRepo := postgres.NewUsageTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogueUC := catalogue.NewUseCase(materialRepo, stockRepo)
	storesUC := stores.NewUseCase(storeRepo, txRunner)
	listingUC := stock.NewListingUseCase(storeRepo, stockRepo, totalRepo, materialRepo)
	adjustmentUC := stock.NewAdjustmentUseCase(storeRepo, materialRepo, stockRepo, txRunner)
	transferUC := stock.NewTransferUseCase(storeRepo, txRunner)
	activityUC := stock.NewActivityUseCase(
		stockRepo, totalRepo, storeRepo,
		adjustmentEventRepo, transferEventRepo, usageEventRepo,
	)

	// Worker de consumo: las tareas pending sobreviven reinicios y se drenan
	// al arrancar; el worker corre hasta que cancelamos el contexto.
	recorder := stock.NewUsageRecorder(storeRepo, materialRepo, txRunner)
	usageQueue := stock.NewUsageQueue(taskRepo, recorder, log, cfg.Usage.MaxRetries, cfg.Usage.QueueBuffer)
	go usageQueue.Run(ctx)

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
		Title:    "Imprenta POS — Libro de Stock",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogueUC:    catalogueUC,
		StoresUC:       storesUC,
		ListingUC:      listingUC,
		AdjustmentUC:   adjustmentUC,
		TransferUC:     transferUC,
		ActivityUC:     activityUC,
		UsageQueue:     usageQueue,
		MetricsEnabled: cfg.Metrics.Enabled,
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
	cancel() // detiene el worker de consumo

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
