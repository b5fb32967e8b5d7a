package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// View las tres proyecciones listas para presentar, más totales del conjunto filtrado.
type View struct {
	Sales      []entity.Sale
	Categories []entity.CategoryAggregate
	Daily      []entity.DailyAggregate
	Totals     Totals
}

// Totals resumen del conjunto filtrado.
type Totals struct {
	Count    int
	Revenue  decimal.Decimal
	Quantity int64
}

// BuildView deriva todas las proyecciones desde (ventas, filtros).
// Es pura: misma entrada, misma salida; se recalcula completa en cada cambio.
func BuildView(sales []entity.Sale, f entity.Filters, keyer DayKeyer) View {
	filtered := Filter(sales, f)

	totals := Totals{Count: len(filtered), Revenue: decimal.Zero}
	for _, s := range filtered {
		totals.Revenue = totals.Revenue.Add(s.Revenue)
		totals.Quantity += s.QuantitySold
	}

	return View{
		Sales:      filtered,
		Categories: AggregateByCategory(filtered),
		Daily:      AggregateByDay(filtered, keyer),
		Totals:     totals,
	}
}
