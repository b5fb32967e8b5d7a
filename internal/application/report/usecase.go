// Package report exporta la vista actual del dashboard a PDF y XLSX.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/ports"
)

// DashboardReader fuente de la vista filtrada (implementada por dashboard.DashboardUseCase).
type DashboardReader interface {
	GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error)
}

// ReportUseCase genera los archivos exportables del dashboard.
type ReportUseCase struct {
	dashboard DashboardReader
	pdf       ports.DashboardPDFGenerator
	xlsx      ports.DashboardWorkbookExporter
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	dashboard DashboardReader,
	pdf ports.DashboardPDFGenerator,
	xlsx ports.DashboardWorkbookExporter,
) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, pdf: pdf, xlsx: xlsx, now: time.Now}
}

// ExportPDF genera el informe PDF de la vista filtrada.
//
// Retorna:
//   - (bytes, filename, nil)   si todo sale bien.
//   - domain.ErrInvalidInput   si los filtros no son válidos.
//   - domain.ErrNotReady       si los datos aún se están cargando.
//   - *domain.FetchError       si la última consulta al índice falló.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, req dto.DashboardRequest) ([]byte, string, error) {
	view, err := uc.dashboard.GetDashboard(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateDashboardPDF(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}
	return data, uc.filename("pdf"), nil
}

// ExportXLSX genera el libro de Excel de la vista filtrada. Mismos errores que ExportPDF.
func (uc *ReportUseCase) ExportXLSX(ctx context.Context, req dto.DashboardRequest) ([]byte, string, error) {
	view, err := uc.dashboard.GetDashboard(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.ExportDashboardXLSX(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar XLSX: %w", err)
	}
	return data, uc.filename("xlsx"), nil
}

// filename ej. "sales-dashboard-20250315-1400.pdf".
func (uc *ReportUseCase) filename(ext string) string {
	return fmt.Sprintf("sales-dashboard-%s.%s", uc.now().Format("20060102-1504"), ext)
}
