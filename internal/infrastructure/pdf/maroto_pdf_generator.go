// Package pdf genera el informe PDF del dashboard de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sales Dashboard          │  Generado / Búsqueda     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS: fechas / precio / categoría                        │
//	│  TOTALES: ventas / unidades / revenue                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REVENUE BY CATEGORY: Categoría | Unidades | Revenue         │
//	│  DAILY SALES TREND:   Día | Revenue                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Producto | Categoría | Precio | Cant | Revenue | Fecha │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/ports"
)

var _ ports.DashboardPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const timestampLayout = "2006-01-02 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DashboardPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
	now   func() time.Time
}

// NewMarotoPDFGenerator construye el generador. title "" = "Sales Dashboard".
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Sales Dashboard"
	}
	return &MarotoPDFGenerator{title: title, now: time.Now}
}

// GenerateDashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDashboardPDF(_ context.Context, view *dto.DashboardDTO) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("pdf: vista nula")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now(), view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filtersRow(view.Filters))
	m.AddRows(totalsRow(view.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("REVENUE BY CATEGORY"))
	m.AddRows(categoryHeaderRow())
	m.AddRows(categoryRows(view.Categories)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("DAILY SALES TREND"))
	m.AddRows(dailyHeaderRow())
	m.AddRows(dailyRows(view.Daily)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("PRODUCT SALES DETAILS"))
	m.AddRows(salesHeaderRow())
	m.AddRows(salesRows(view.Sales)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación + búsqueda activa (der).
func headerRow(title string, now time.Time, view *dto.DashboardDTO) core.Row {
	fetched := "-"
	if view.FetchedAt != nil {
		fetched = view.FetchedAt.Format(timestampLayout)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Datos obtenidos: "+fetched, props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+now.Format(timestampLayout), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Búsqueda: "+nonEmpty(view.LastQuery, "(todas)"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// filtersRow: filtros efectivos aplicados a la vista.
func filtersRow(f dto.AppliedFiltersDTO) core.Row {
	maxPrice := "sin límite"
	if f.MaxPrice != nil {
		maxPrice = formatMoney(*f.MaxPrice)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FILTROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Desde: %s   |   Hasta: %s   |   Precio: %s - %s   |   Categoría: %s",
				formatOptionalTime(f.StartDate),
				formatOptionalTime(f.EndDate),
				formatMoney(f.MinPrice), maxPrice,
				nonEmpty(f.Category, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t dto.DashboardTotalsDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(10).Add(
		col.New(2).Add(label("Ventas:")),
		col.New(2).Add(value(strconv.Itoa(t.Count))),
		col.New(2).Add(label("Unidades:")),
		col.New(2).Add(value(strconv.FormatInt(t.Quantity, 10))),
		col.New(2).Add(text.New("Revenue:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		})),
		col.New(2).Add(text.New(formatMoney(t.Revenue), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

// headerCell celda de cabecera de tabla (texto blanco sobre la fila coloreada).
func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func tableHeader(cols ...core.Col) core.Row {
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func categoryHeaderRow() core.Row {
	return tableHeader(
		headerCell("Categoría", 6, align.Left),
		headerCell("Unidades", 3, align.Right),
		headerCell("Revenue", 3, align.Right),
	)
}

func categoryRows(items []dto.CategoryAggregateDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(items))
	for _, c := range items {
		result = append(result, row.New(6).Add(
			cell(c.Category, 6, align.Left),
			cell(strconv.FormatInt(c.Quantity, 10), 3, align.Right),
			cell(formatMoney(c.Revenue), 3, align.Right),
		))
	}
	return result
}

func dailyHeaderRow() core.Row {
	return tableHeader(
		headerCell("Día", 6, align.Left),
		headerCell("Revenue", 6, align.Right),
	)
}

func dailyRows(items []dto.DailyAggregateDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(items))
	for _, d := range items {
		result = append(result, row.New(6).Add(
			cell(d.Date, 6, align.Left),
			cell(formatMoney(d.Revenue), 6, align.Right),
		))
	}
	return result
}

func salesHeaderRow() core.Row {
	return tableHeader(
		headerCell("Producto", 3, align.Left),
		headerCell("Categoría", 2, align.Left),
		headerCell("Precio", 2, align.Right),
		headerCell("Cant.", 1, align.Center),
		headerCell("Revenue", 2, align.Right),
		headerCell("Fecha", 2, align.Right),
	)
}

// salesRows: una fila por venta; las rebajadas llevan "*".
func salesRows(items []dto.SaleDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(items))
	for _, s := range items {
		name := s.Name
		if s.IsDiscounted {
			name += " *"
		}
		result = append(result, row.New(6).Add(
			cell(name, 3, align.Left),
			cell(s.Category, 2, align.Left),
			cell(formatMoney(s.Price), 2, align.Right),
			cell(strconv.FormatInt(s.QuantitySold, 10), 1, align.Center),
			cell(formatMoney(s.Revenue), 2, align.Right),
			cell(s.Timestamp.Format(timestampLayout), 2, align.Right),
		))
	}
	return result
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin datos para los filtros seleccionados", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timestampLayout)
}

// formatMoney formatea un importe con separador de miles y 2 decimales.
// Ej: 1234567.5 → "$1,234,567.50", -12 → "-$12.00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]
	return sign + "$" + groupThousands(intPart, ',') + frac
}

// groupThousands inserta sep cada tres dígitos en un string numérico sin decimales.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string, sep byte) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, sep)
		}
		buf = append(buf, c)
	}
	return string(buf)
}
