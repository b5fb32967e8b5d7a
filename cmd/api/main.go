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

	"github.com/jhoicas/sales-dashboard/internal/application/dashboard"
	"github.com/jhoicas/sales-dashboard/internal/application/report"
	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/internal/infrastructure/elasticsearch"
	infrapdf "github.com/jhoicas/sales-dashboard/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/sales-dashboard/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/sales-dashboard/internal/interfaces/http"
	"github.com/jhoicas/sales-dashboard/pkg/config"
	"github.com/jhoicas/sales-dashboard/pkg/locale"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("es_base_url", cfg.Search.BaseURL).
		Str("es_index", cfg.Search.Index).
		Msg("iniciando aplicación")

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del dashboard")
	}

	esClient := elasticsearch.NewClient(elasticsearch.Config{
		BaseURL:  cfg.Search.BaseURL,
		Index:    cfg.Search.Index,
		Timeout:  cfg.Search.Timeout,
		Location: loc,
	}, log)

	salesUC := sales.NewSalesUseCase(esClient, cfg.Search.FetchSize, log)
	dayKeyer := locale.NewDayKeyer(cfg.Dashboard.Locale, loc)
	dashboardUC := dashboard.NewDashboardUseCase(salesUC, dayKeyer, loc, cfg.Dashboard.DefaultMaxPrice)
	reportUC := report.NewReportUseCase(
		dashboardUC,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		infraxlsx.NewExcelizeExporter(),
	)

	// Fetch inicial: el dashboard responde "loading" hasta que termine.
	baseCtx, cancelFetch := context.WithCancel(context.Background())
	defer cancelFetch()
	go func() {
		if err := salesUC.FetchInitial(baseCtx); err != nil {
			log.Warn().Err(err).Msg("fetch inicial fallido; se puede reintentar con POST /api/dashboard/refresh")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Search.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sales Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		SalesUC:     salesUC,
		ReportUC:    reportUC,
		Logger:      log,
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
	cancelFetch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
