// Package dashboard deriva las proyecciones del dashboard de ventas (ventas
// filtradas, agregados por categoría y por día) a partir del estado publicado
// por el caso de uso de ventas y de los filtros del usuario.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// StateReader expone el último estado publicado de la fuente de ventas.
type StateReader interface {
	Snapshot() sales.State
}

// DashboardUseCase construye el DashboardDTO a partir de (ventas, filtros).
// No guarda nada entre llamadas: cada petición recalcula todas las proyecciones.
type DashboardUseCase struct {
	states     StateReader
	keyer      DayKeyer
	loc        *time.Location
	defaultMax decimal.Decimal
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(states StateReader, keyer DayKeyer, loc *time.Location, defaultMax decimal.Decimal) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{states: states, keyer: keyer, loc: loc, defaultMax: defaultMax}
}

// GetDashboard devuelve las proyecciones para los filtros indicados.
//
// Retorna:
//   - domain.ErrInvalidInput   si los filtros no se pueden interpretar.
//   - domain.ErrNotReady       si hay una petición al índice en curso (tiene prioridad sobre el error).
//   - *domain.FetchError       si la última petición falló; no hay modo degradado con datos viejos.
func (uc *DashboardUseCase) GetDashboard(_ context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error) {
	f, err := ParseFilters(req, uc.loc, uc.defaultMax)
	if err != nil {
		return nil, err
	}

	st := uc.states.Snapshot()
	if st.Loading {
		return nil, domain.ErrNotReady
	}
	if st.Err != nil {
		return nil, st.Err
	}

	view := BuildView(st.Sales, f, uc.keyer)
	return toDashboardDTO(st, f, view), nil
}

func toDashboardDTO(st sales.State, f entity.Filters, view View) *dto.DashboardDTO {
	out := &dto.DashboardDTO{
		Status:    dto.DashboardStatusReady,
		LastQuery: st.LastQuery,
		Filters: dto.AppliedFiltersDTO{
			StartDate: f.StartDate,
			EndDate:   f.EndDate,
			MinPrice:  f.MinPrice,
			MaxPrice:  f.MaxPrice,
			Category:  f.Category,
		},
		Totals: dto.DashboardTotalsDTO{
			Count:    view.Totals.Count,
			Revenue:  view.Totals.Revenue,
			Quantity: view.Totals.Quantity,
		},
		Categories: make([]dto.CategoryAggregateDTO, 0, len(view.Categories)),
		Daily:      make([]dto.DailyAggregateDTO, 0, len(view.Daily)),
		Sales:      make([]dto.SaleDTO, 0, len(view.Sales)),
	}
	if !st.FetchedAt.IsZero() {
		fetchedAt := st.FetchedAt
		out.FetchedAt = &fetchedAt
	}
	for _, c := range view.Categories {
		out.Categories = append(out.Categories, dto.CategoryAggregateDTO{
			Category: c.Category, Revenue: c.Revenue, Quantity: c.Quantity,
		})
	}
	for _, d := range view.Daily {
		out.Daily = append(out.Daily, dto.DailyAggregateDTO{Date: d.Date, Revenue: d.Revenue})
	}
	for _, s := range view.Sales {
		out.Sales = append(out.Sales, dto.SaleDTO{
			ID:           s.ID,
			Name:         s.Name,
			Category:     s.Category,
			Price:        s.Price,
			QuantitySold: s.QuantitySold,
			Revenue:      s.Revenue,
			Timestamp:    s.Timestamp,
			IsDiscounted: s.IsDiscounted,
		})
	}
	return out
}
