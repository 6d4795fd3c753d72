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

	"github.com/jhoicas/Custodia-api/internal/application/custody"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
	infrabarcode "github.com/jhoicas/Custodia-api/internal/infrastructure/barcode"
	infrapdf "github.com/jhoicas/Custodia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Custodia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Custodia-api/internal/interfaces/http"
	"github.com/jhoicas/Custodia-api/pkg/config"
	"github.com/jhoicas/Custodia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repos atados al pool (lecturas fuera de transacción). Las escrituras
	// atómicas reciben repos atados a la tx vía TxRunner.
	barcodeRepo := postgres.NewBarcodeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	prefixRepo := postgres.NewBarcodePrefixRepository(pool)
	ledgerRepo := postgres.NewInventoryTransactionRepository(pool)
	allocationRepo := postgres.NewAllocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Rasterizador Code 128 con degradado: primero la caja configurada,
	// si no cabe se reintenta con el tamaño nativo del símbolo.
	rasterizer := infrabarcode.NewCode128Rasterizer()
	symbols := labels.NewSymbolStrategy(
		rasterizer,
		labels.SymbolOptions{WidthPx: cfg.Labels.SymbolWidthPx, HeightPx: cfg.Labels.SymbolHeightPx, Scaled: true},
		labels.SymbolOptions{Scaled: false},
	)
	sheets := infrapdf.NewMarotoLabelSheet()

	mintUC := labels.NewMintLabelsUseCase(
		txRunner, barcodeRepo, productRepo, prefixRepo,
		symbols, sheets, cfg.Labels.DefaultPrefix,
	)
	prefixUC := labels.NewPrefixUseCase(prefixRepo)
	recordUC := custody.NewRecordTransactionUseCase(txRunner)
	historyUC := custody.NewHistoryUseCase(ledgerRepo, barcodeRepo, productRepo, allocationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Custodia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MintLabels:        mintUC,
		PrefixUC:          prefixUC,
		RecordTransaction: recordUC,
		HistoryUC:         historyUC,
		LabelsOutputDir:   cfg.Labels.OutputDir,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
