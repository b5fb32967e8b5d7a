package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-dashboard/internal/application/dashboard"
	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/report"
	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler maneja los endpoints del dashboard de ventas.
type DashboardHandler struct {
	dashboard *dashboard.DashboardUseCase
	sales     *sales.SalesUseCase
	reports   *report.ReportUseCase
	log       *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(
	dashboardUC *dashboard.DashboardUseCase,
	salesUC *sales.SalesUseCase,
	reportUC *report.ReportUseCase,
	log *logger.Logger,
) *DashboardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardHandler{
		dashboard: dashboardUC,
		sales:     salesUC,
		reports:   reportUC,
		log:       log.Component("dashboard_handler"),
	}
}

// Get godoc
// @Summary      Vista del dashboard de ventas
// @Description  Ventas filtradas, revenue por categoría y tendencia diaria. Mientras hay una
//               consulta al índice en curso responde 202 {status:"loading"}; si la última falló, 502.
// @Tags         dashboard
// @Produce      json
// @Param        start_date  query  string  false  "Excluye ventas en o antes de esta fecha (YYYY-MM-DD o RFC 3339)"
// @Param        end_date    query  string  false  "Excluye ventas en o después de esta fecha (YYYY-MM-DD o RFC 3339)"
// @Param        min_price   query  string  false  "Precio mínimo inclusivo (default 0)"
// @Param        max_price   query  string  false  "Precio máximo inclusivo (default 500)"
// @Param        category    query  string  false  "Subcadena de categoría, sin distinguir mayúsculas"
// @Success      200  {object}  dto.DashboardDTO
// @Success      202  {object}  dto.DashboardStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	req, ok := h.parseFilters(c)
	if !ok {
		return nil
	}
	return h.render(c, req)
}

// Search godoc
// @Summary      Búsqueda de ventas
// @Description  Consulta el índice por nombre o categoría (multi_match) y reemplaza las ventas
//               del dashboard. El término se envía tal cual, incluso vacío; sin cuerpo equivale a term "".
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchRequest  false  "Término de búsqueda"
// @Success      200  {object}  dto.DashboardDTO
// @Success      202  {object}  dto.DashboardStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/search [post]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	req, ok := h.parseFilters(c)
	if !ok {
		return nil
	}
	// Sin cuerpo equivale a {"term":""}: el término vacío también viaja al índice.
	var body dto.SearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: "cuerpo JSON inválido",
			})
		}
	}

	// El resultado (éxito, fallo o respuesta obsoleta) ya quedó en el estado.
	if err := h.sales.Search(c.Context(), body.Term); err != nil {
		h.logOutcome(c, "search", err)
	}
	return h.render(c, req)
}

// Refresh godoc
// @Summary      Recargar ventas
// @Description  Repite la consulta inicial (100 ventas más recientes) y devuelve la vista.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Success      202  {object}  dto.DashboardStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	req, ok := h.parseFilters(c)
	if !ok {
		return nil
	}
	if err := h.sales.Refresh(c.Context()); err != nil {
		h.logOutcome(c, "refresh", err)
	}
	return h.render(c, req)
}

// ExportPDF godoc
// @Summary      Informe PDF del dashboard
// @Tags         dashboard
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Ver GET /api/dashboard"
// @Param        end_date    query  string  false  "Ver GET /api/dashboard"
// @Param        min_price   query  string  false  "Ver GET /api/dashboard"
// @Param        max_price   query  string  false  "Ver GET /api/dashboard"
// @Param        category    query  string  false  "Ver GET /api/dashboard"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard/export.pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	req, ok := h.parseFilters(c)
	if !ok {
		return nil
	}
	data, filename, err := h.reports.ExportPDF(c.Context(), req)
	if err != nil {
		return h.exportError(c, err)
	}
	return sendAttachment(c, contentTypePDF, filename, data)
}

// ExportXLSX godoc
// @Summary      Exportar el dashboard a Excel
// @Description  Libro con las hojas Sales, Categories y Daily.
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Ver GET /api/dashboard"
// @Param        end_date    query  string  false  "Ver GET /api/dashboard"
// @Param        min_price   query  string  false  "Ver GET /api/dashboard"
// @Param        max_price   query  string  false  "Ver GET /api/dashboard"
// @Param        category    query  string  false  "Ver GET /api/dashboard"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard/export.xlsx [get]
func (h *DashboardHandler) ExportXLSX(c *fiber.Ctx) error {
	req, ok := h.parseFilters(c)
	if !ok {
		return nil
	}
	data, filename, err := h.reports.ExportXLSX(c.Context(), req)
	if err != nil {
		return h.exportError(c, err)
	}
	return sendAttachment(c, contentTypeXLSX, filename, data)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parseFilters lee los filtros de la query. Si falla ya escribió la respuesta 400.
func (h *DashboardHandler) parseFilters(c *fiber.Ctx) (dto.DashboardRequest, bool) {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
		return req, false
	}
	return req, true
}

// render escribe la vista según el estado: cargando (202) tiene prioridad sobre error (502).
func (h *DashboardHandler) render(c *fiber.Ctx, req dto.DashboardRequest) error {
	view, err := h.dashboard.GetDashboard(c.Context(), req)
	switch {
	case err == nil:
		return c.JSON(view)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotReady):
		return c.Status(fiber.StatusAccepted).JSON(dto.DashboardStatusDTO{Status: dto.DashboardStatusLoading})
	case errors.Is(err, domain.ErrFetchFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "FETCH_FAILED", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}

func (h *DashboardHandler) exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotReady), errors.Is(err, domain.ErrFetchFailed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NOT_READY", Message: "no hay datos listos para exportar: " + err.Error(),
		})
	default:
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("exportación fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}

func (h *DashboardHandler) logOutcome(c *fiber.Ctx, op string, err error) {
	ev := h.log.Warn()
	if errors.Is(err, sales.ErrStaleResponse) {
		ev = h.log.Debug()
	}
	ev.Err(err).Str("op", op).Str("request_id", GetRequestID(c)).Msg("consulta al índice no completada")
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
