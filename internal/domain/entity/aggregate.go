package entity

import "github.com/shopspring/decimal"

// CategoryAggregate sumas acumuladas de los registros filtrados que comparten categoría.
type CategoryAggregate struct {
	Category string
	Revenue  decimal.Decimal
	Quantity int64
}

// DailyAggregate ingreso acumulado por día calendario (fecha renderizada según el locale).
type DailyAggregate struct {
	Date    string
	Revenue decimal.Decimal
}
