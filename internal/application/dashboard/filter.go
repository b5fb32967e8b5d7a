package dashboard

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// Filter devuelve, en el mismo orden, las ventas que cumplen todos los filtros.
// Con filtros vacíos (MinPrice 0, sin tope, sin fechas, sin categoría) devuelve la entrada intacta.
func Filter(sales []entity.Sale, f entity.Filters) []entity.Sale {
	out := make([]entity.Sale, 0, len(sales))
	lower := cases.Lower(language.Und) // un Caser no se comparte entre goroutines: uno por llamada
	needle := lower.String(f.Category)
	for _, s := range sales {
		if matches(s, f, needle, lower) {
			out = append(out, s)
		}
	}
	return out
}

// Matches evalúa el predicado de filtrado sobre una sola venta.
func Matches(s entity.Sale, f entity.Filters) bool {
	lower := cases.Lower(language.Und)
	return matches(s, f, lower.String(f.Category), lower)
}

func matches(s entity.Sale, f entity.Filters, needle string, lower cases.Caser) bool {
	// Precio: rango inclusivo
	if s.Price.LessThan(f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && s.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	// Categoría: ambos lados en minúsculas, sin plegado ("ß" no equivale a "ss").
	// Solo "" desactiva el filtro; " " sigue siendo una subcadena a buscar.
	if f.Category != "" && !strings.Contains(lower.String(s.Category), needle) {
		return false
	}

	// Fechas: ambos extremos exclusivos
	if f.StartDate != nil && !s.Timestamp.After(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !s.Timestamp.Before(*f.EndDate) {
		return false
	}
	return true
}
