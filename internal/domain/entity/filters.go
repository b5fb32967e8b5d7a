package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxPrice tope de precio inicial del dashboard (el slider arranca en 0–500).
var DefaultMaxPrice = decimal.NewFromInt(500)

// Filters restricciones elegidas por el usuario antes de agregar.
//
// Las fechas son exclusivas en ambos extremos: un registro con timestamp igual
// a StartDate o EndDate queda fuera. nil = sin límite en ese eje.
// El rango de precio es inclusivo; MaxPrice nil = sin tope.
// Category vacío acepta todo; si no, se compara como subcadena sin distinguir mayúsculas.
type Filters struct {
	StartDate *time.Time
	EndDate   *time.Time
	MinPrice  decimal.Decimal
	MaxPrice  *decimal.Decimal
	Category  string
}

// DefaultFilters devuelve los filtros con los que arranca el dashboard.
func DefaultFilters() Filters {
	maxPrice := DefaultMaxPrice
	return Filters{
		MinPrice: decimal.Zero,
		MaxPrice: &maxPrice,
	}
}
