package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del cuerpo de GET /api/dashboard. Un fallo del índice no lleva
// estado propio: responde 502 con dto.ErrorResponse.
const (
	DashboardStatusLoading = "loading"
	DashboardStatusReady   = "ready"
)

// DashboardRequest filtros de GET /api/dashboard (también aplican a search, refresh y exports).
type DashboardRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD o RFC 3339; exclusivo
	EndDate   string `query:"end_date"`   // YYYY-MM-DD o RFC 3339; exclusivo
	MinPrice  string `query:"min_price"`  // por defecto 0
	MaxPrice  string `query:"max_price"`  // por defecto DASHBOARD_DEFAULT_MAX_PRICE
	Category  string `query:"category"`   // subcadena sin distinguir mayúsculas
}

// SearchRequest cuerpo de POST /api/dashboard/search. Term se envía tal cual al índice.
type SearchRequest struct {
	Term string `json:"term"`
}

// SaleDTO fila de la tabla "Product Sales Details".
type SaleDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Timestamp    time.Time       `json:"timestamp"`
	IsDiscounted bool            `json:"is_discounted"`
}

// CategoryAggregateDTO porción del gráfico "Revenue by Category".
type CategoryAggregateDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int64           `json:"quantity"`
}

// DailyAggregateDTO barra del gráfico "Daily Sales Trend".
type DailyAggregateDTO struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardTotalsDTO totales del conjunto filtrado.
type DashboardTotalsDTO struct {
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int64           `json:"quantity"`
}

// AppliedFiltersDTO filtros efectivos tras aplicar valores por defecto.
type AppliedFiltersDTO struct {
	StartDate *time.Time       `json:"start_date,omitempty"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
	MinPrice  decimal.Decimal  `json:"min_price"`
	MaxPrice  *decimal.Decimal `json:"max_price,omitempty"`
	Category  string           `json:"category"`
}

// DashboardDTO respuesta de GET /api/dashboard cuando los datos están listos.
type DashboardDTO struct {
	Status     string                 `json:"status"`
	LastQuery  string                 `json:"last_query"` // "" = fetch inicial
	FetchedAt  *time.Time             `json:"fetched_at,omitempty"`
	Filters    AppliedFiltersDTO      `json:"filters"`
	Totals     DashboardTotalsDTO     `json:"totals"`
	Categories []CategoryAggregateDTO `json:"categories"`
	Daily      []DailyAggregateDTO    `json:"daily"`
	Sales      []SaleDTO              `json:"sales"`
}

// DashboardStatusDTO respuesta mínima mientras hay una petición en curso.
type DashboardStatusDTO struct {
	Status string `json:"status"`
}
