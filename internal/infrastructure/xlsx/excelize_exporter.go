// Package xlsx exporta la vista del dashboard a un libro de Excel con tres hojas:
// Sales (detalle), Categories (revenue por categoría) y Daily (tendencia diaria).
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/ports"
)

var _ ports.DashboardWorkbookExporter = (*ExcelizeExporter)(nil)

// Nombres de las hojas, en el orden en que aparecen en el libro.
const (
	SheetSales      = "Sales"
	SheetCategories = "Categories"
	SheetDaily      = "Daily"
)

const timestampFormat = "yyyy-mm-dd hh:mm"

// ExcelizeExporter implementa ports.DashboardWorkbookExporter con excelize.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// ExportDashboardXLSX escribe el libro en memoria y devuelve sus bytes.
func (e *ExcelizeExporter) ExportDashboardXLSX(_ context.Context, view *dto.DashboardDTO) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("xlsx: vista nula")
	}

	f := excelize.NewFile()
	defer f.Close()

	// La hoja por defecto pasa a ser "Sales".
	if err := f.SetSheetName(f.GetSheetName(0), SheetSales); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de importe: %w", err)
	}
	tsFmt := timestampFormat
	tsStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &tsFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de fecha: %w", err)
	}

	w := sheetWriter{f: f, header: headerStyle}
	if err := w.writeSales(view.Sales, moneyStyle, tsStyle); err != nil {
		return nil, err
	}
	if err := w.writeCategories(view.Categories, moneyStyle); err != nil {
		return nil, err
	}
	if err := w.writeDaily(view.Daily, moneyStyle); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Hojas ─────────────────────────────────────────────────────────────────────

type sheetWriter struct {
	f      *excelize.File
	header int
}

func (w sheetWriter) writeSales(sales []dto.SaleDTO, moneyStyle, tsStyle int) error {
	headers := []interface{}{"ID", "Name", "Category", "Price", "Quantity Sold", "Revenue", "Timestamp", "Discounted"}
	if err := w.writeHeader(SheetSales, headers, []float64{38, 24, 20, 12, 14, 14, 18, 12}); err != nil {
		return err
	}
	for i, s := range sales {
		r := i + 2
		if err := w.writeRow(SheetSales, r, []interface{}{
			s.ID, s.Name, s.Category,
			s.Price.InexactFloat64(), s.QuantitySold, s.Revenue.InexactFloat64(),
			s.Timestamp, s.IsDiscounted,
		}); err != nil {
			return err
		}
	}
	if n := len(sales); n > 0 {
		if err := w.style(SheetSales, "D2", fmt.Sprintf("D%d", n+1), moneyStyle); err != nil {
			return err
		}
		if err := w.style(SheetSales, "F2", fmt.Sprintf("F%d", n+1), moneyStyle); err != nil {
			return err
		}
		if err := w.style(SheetSales, "G2", fmt.Sprintf("G%d", n+1), tsStyle); err != nil {
			return err
		}
	}
	return nil
}

func (w sheetWriter) writeCategories(items []dto.CategoryAggregateDTO, moneyStyle int) error {
	if err := w.writeHeader(SheetCategories, []interface{}{"Category", "Quantity", "Revenue"}, []float64{24, 12, 16}); err != nil {
		return err
	}
	for i, c := range items {
		if err := w.writeRow(SheetCategories, i+2, []interface{}{c.Category, c.Quantity, c.Revenue.InexactFloat64()}); err != nil {
			return err
		}
	}
	if n := len(items); n > 0 {
		return w.style(SheetCategories, "C2", fmt.Sprintf("C%d", n+1), moneyStyle)
	}
	return nil
}

func (w sheetWriter) writeDaily(items []dto.DailyAggregateDTO, moneyStyle int) error {
	if err := w.writeHeader(SheetDaily, []interface{}{"Date", "Revenue"}, []float64{14, 16}); err != nil {
		return err
	}
	for i, d := range items {
		if err := w.writeRow(SheetDaily, i+2, []interface{}{d.Date, d.Revenue.InexactFloat64()}); err != nil {
			return err
		}
	}
	if n := len(items); n > 0 {
		return w.style(SheetDaily, "B2", fmt.Sprintf("B%d", n+1), moneyStyle)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (w sheetWriter) writeHeader(sheet string, headers []interface{}, widths []float64) error {
	if err := w.writeRow(sheet, 1, headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := w.style(sheet, "A1", last, w.header); err != nil {
		return err
	}
	for i, width := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := w.f.SetColWidth(sheet, colName, colName, width); err != nil {
			return fmt.Errorf("xlsx: ancho de columna %s!%s: %w", sheet, colName, err)
		}
	}
	return nil
}

func (w sheetWriter) writeRow(sheet string, r int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: escribir fila %s!%d: %w", sheet, r, err)
	}
	return nil
}

func (w sheetWriter) style(sheet, from, to string, style int) error {
	if err := w.f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("xlsx: estilo %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}
