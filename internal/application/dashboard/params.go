package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// ParseFilters convierte los parámetros de consulta en Filters; aplica valores por defecto si están vacíos.
// Las fechas YYYY-MM-DD se interpretan a medianoche en loc.
func ParseFilters(req dto.DashboardRequest, loc *time.Location, defaultMax decimal.Decimal) (entity.Filters, error) {
	if loc == nil {
		loc = time.Local
	}
	f := entity.Filters{Category: req.Category, MinPrice: decimal.Zero}

	var err error
	if f.StartDate, err = parseBound(req.StartDate, loc); err != nil {
		return entity.Filters{}, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidInput, err)
	}
	if f.EndDate, err = parseBound(req.EndDate, loc); err != nil {
		return entity.Filters{}, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidInput, err)
	}

	if s := strings.TrimSpace(req.MinPrice); s != "" {
		if f.MinPrice, err = decimal.NewFromString(s); err != nil {
			return entity.Filters{}, fmt.Errorf("%w: min_price: %v", domain.ErrInvalidInput, err)
		}
	}
	maxPrice := defaultMax
	if s := strings.TrimSpace(req.MaxPrice); s != "" {
		if maxPrice, err = decimal.NewFromString(s); err != nil {
			return entity.Filters{}, fmt.Errorf("%w: max_price: %v", domain.ErrInvalidInput, err)
		}
	}
	f.MaxPrice = &maxPrice

	if f.MinPrice.IsNegative() {
		return entity.Filters{}, fmt.Errorf("%w: min_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if f.MinPrice.GreaterThan(maxPrice) {
		return entity.Filters{}, fmt.Errorf("%w: min_price no puede ser mayor que max_price", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseBound(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("formato esperado YYYY-MM-DD o RFC 3339: %q", s)
	}
	return &t, nil
}
