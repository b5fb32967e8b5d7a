package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-dashboard/internal/application/dashboard"
	"github.com/jhoicas/sales-dashboard/internal/application/report"
	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *dashboard.DashboardUseCase
	SalesUC     *sales.SalesUseCase
	ReportUC    *report.ReportUseCase
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard de ventas
	dash := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.SalesUC, deps.ReportUC, deps.Logger)
	dash.Get("/", dashboardHandler.Get)
	dash.Post("/search", dashboardHandler.Search)
	dash.Post("/refresh", dashboardHandler.Refresh)
	dash.Get("/export.pdf", dashboardHandler.ExportPDF)
	dash.Get("/export.xlsx", dashboardHandler.ExportXLSX)
}
