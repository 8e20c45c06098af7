package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/cache"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/erp"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/depo-terminal/internal/infrastructure/pdf"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/depo-terminal/internal/interfaces/http"
	"github.com/jhoicas/depo-terminal/pkg/config"
	"github.com/jhoicas/depo-terminal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.ERP.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("erp", cfg.ERP.BaseURL).
		Msg("iniciando aplicación")

	// Cantidades como números JSON, igual que las espera el ERP.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var (
		recorder appmovement.Recorder = appmovement.NopRecorder{}
		observer erp.Observer
		promRec  *metrics.Recorder
	)
	if cfg.Metrics.Enabled {
		promRec = metrics.NewRecorder("depo")
		recorder, observer = promRec, promRec
	}

	gateway := erp.NewClient(erp.Config{
		BaseURL:    cfg.ERP.BaseURL,
		BranchCode: cfg.ERP.BranchCode,
		Timeout:    cfg.ERP.Timeout,
	}, observer)
	catalog := cache.NewCatalogCache(gateway, cfg.Catalog.CacheTTL)

	generateDeps := appmovement.GenerateDeps{
		Cache:   catalog,
		Metrics: recorder,
		Logger:  log.Component("generate"),
	}
	collectionDeps := appmovement.CollectionDeps{
		Metrics: recorder,
		Logger:  log.Component("collection"),
	}

	// PostgreSQL es opcional: sin él no hay diario de escaneos ni historial local.
	if cfg.DB.Enabled() {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), 0, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		generateDeps.TxRunner = postgres.NewTxRunner(pool)
		generateDeps.Generated = postgres.NewGeneratedDocumentRepository(pool)
		collectionDeps.Journal = postgres.NewScanEventRepository(pool)
	} else {
		log.Warn().Msg("sin base de datos: diario de escaneos e historial desactivados")
	}

	catalogUC := appmovement.NewCatalogUseCase(catalog)
	selectionUC := appmovement.NewSelectionUseCase()
	builder := movement.NewRequestBuilder(nil, cfg.Terminal.PlaceholderUserID)
	generateUC := appmovement.NewGenerateUseCase(gateway, selectionUC, builder, generateDeps)
	collectionUC := appmovement.NewCollectionUseCase(gateway, collectionDeps)
	pickListUC := appmovement.NewPickListUseCase(collectionUC, infrapdf.NewPickListGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.ERP.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs (solo si el archivo existe)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Depo Terminal API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if promRec != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promRec.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		SelectionUC:  selectionUC,
		GenerateUC:   generateUC,
		CollectionUC: collectionUC,
		PickListUC:   pickListUC,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
