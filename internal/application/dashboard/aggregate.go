package dashboard

import (
	"time"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// DayKeyer convierte un timestamp en la etiqueta de su día calendario.
// pkg/locale.DayKeyer es la implementación usada en producción.
type DayKeyer interface {
	Key(t time.Time) string
}

// AggregateByCategory acumula revenue y cantidad por categoría en una sola pasada.
// La primera aparición de una categoría crea la entrada; el orden de salida es el
// orden de primera aparición (no se ordena). La clave distingue mayúsculas.
func AggregateByCategory(sales []entity.Sale) []entity.CategoryAggregate {
	out := make([]entity.CategoryAggregate, 0)
	index := make(map[string]int)
	for _, s := range sales {
		i, ok := index[s.Category]
		if !ok {
			index[s.Category] = len(out)
			out = append(out, entity.CategoryAggregate{
				Category: s.Category,
				Revenue:  s.Revenue,
				Quantity: s.QuantitySold,
			})
			continue
		}
		out[i].Revenue = out[i].Revenue.Add(s.Revenue)
		out[i].Quantity += s.QuantitySold
	}
	return out
}

// AggregateByDay acumula revenue por día calendario con el mismo patrón.
// Dos timestamps del mismo día (según keyer) caen en el mismo bucket; se pierde la hora.
func AggregateByDay(sales []entity.Sale, keyer DayKeyer) []entity.DailyAggregate {
	out := make([]entity.DailyAggregate, 0)
	index := make(map[string]int)
	for _, s := range sales {
		day := keyer.Key(s.Timestamp)
		i, ok := index[day]
		if !ok {
			index[day] = len(out)
			out = append(out, entity.DailyAggregate{Date: day, Revenue: s.Revenue})
			continue
		}
		out[i].Revenue = out[i].Revenue.Add(s.Revenue)
	}
	return out
}
