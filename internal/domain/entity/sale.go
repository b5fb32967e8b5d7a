package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de producto tal como la devuelve el índice de búsqueda.
// Es inmutable una vez leída: un nuevo fetch reemplaza el conjunto completo, nunca se mezcla.
// Revenue NO se deriva de Price × QuantitySold aquí; es un campo independiente del documento.
type Sale struct {
	ID           string // _id del documento, único dentro de un mismo lote
	Name         string
	Category     string
	Price        decimal.Decimal // >= 0
	QuantitySold int64           // >= 0
	Revenue      decimal.Decimal // >= 0
	Timestamp    time.Time
	IsDiscounted bool
}
