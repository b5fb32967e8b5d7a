package ports

import (
	"context"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
)

// DashboardPDFGenerator puerto de salida para el informe PDF del dashboard.
// Recibe la vista ya filtrada y agregada; no aplica filtros propios.
type DashboardPDFGenerator interface {
	GenerateDashboardPDF(ctx context.Context, view *dto.DashboardDTO) ([]byte, error)
}

// DashboardWorkbookExporter puerto de salida para la exportación a hoja de cálculo
// (hojas Sales, Categories y Daily).
type DashboardWorkbookExporter interface {
	ExportDashboardXLSX(ctx context.Context, view *dto.DashboardDTO) ([]byte, error)
}
