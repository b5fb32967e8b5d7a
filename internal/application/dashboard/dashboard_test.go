package dashboard_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-dashboard/internal/application/dashboard"
	"github.com/jhoicas/sales-dashboard/internal/application/dto"
	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard/pkg/locale"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func rec(id, category, price, revenue string, qty int64, ts time.Time) entity.Sale {
	return entity.Sale{
		ID: id, Name: "item " + id, Category: category,
		Price: dec(price), Revenue: dec(revenue), QuantitySold: qty, Timestamp: ts,
	}
}

// openFilters sin tope, sin fechas, sin categoría.
func openFilters() entity.Filters {
	return entity.Filters{MinPrice: decimal.Zero}
}

// randomSales genera ventas reproducibles para las pruebas de propiedades.
func randomSales(seed int64, n int) []entity.Sale {
	r := rand.New(rand.NewSource(seed))
	cats := []string{"Electronics", "electronics", "Books", "Home & Kitchen", "Toys & Games"}
	out := make([]entity.Sale, 0, n)
	for i := 0; i < n; i++ {
		price := decimal.NewFromInt(int64(r.Intn(60000))).Shift(-2)
		qty := int64(r.Intn(20) + 1)
		out = append(out, entity.Sale{
			ID:           string(rune('a'+i%26)) + decimal.NewFromInt(int64(i)).String(),
			Category:     cats[r.Intn(len(cats))],
			Price:        price,
			QuantitySold: qty,
			Revenue:      price.Mul(decimal.NewFromInt(qty)),
			Timestamp:    t0.Add(time.Duration(r.Intn(10*24)) * time.Hour),
		})
	}
	return out
}

func sumRevenue(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Revenue)
	}
	return total
}

var utcKeyer = locale.NewDayKeyer("en-US", time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Filter
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_SinFiltros_DevuelveTodoEnOrden(t *testing.T) {
	in := randomSales(1, 50)
	assert.Equal(t, in, dashboard.Filter(in, openFilters()))
}

func TestFilter_Escenario(t *testing.T) {
	in := []entity.Sale{
		rec("1", "A", "5", "10", 1, t0),
		rec("2", "A", "5", "20", 2, t0),
		rec("3", "B", "500", "5", 1, t0),
	}
	f := entity.Filters{MinPrice: decimal.Zero, MaxPrice: ptr(dec("100"))}

	view := dashboard.BuildView(in, f, utcKeyer)
	require.Len(t, view.Sales, 2)
	assert.Equal(t, "1", view.Sales[0].ID)
	assert.Equal(t, "2", view.Sales[1].ID)

	require.Len(t, view.Categories, 1)
	assert.Equal(t, "A", view.Categories[0].Category)
	assert.True(t, view.Categories[0].Revenue.Equal(dec("30")))
	assert.Equal(t, int64(3), view.Categories[0].Quantity)
}

func TestFilter_PrecioInclusivo(t *testing.T) {
	in := []entity.Sale{
		rec("min", "A", "10", "1", 1, t0),
		rec("max", "A", "20", "1", 1, t0),
		rec("below", "A", "9.99", "1", 1, t0),
		rec("above", "A", "20.01", "1", 1, t0),
	}
	f := entity.Filters{MinPrice: dec("10"), MaxPrice: ptr(dec("20"))}

	out := dashboard.Filter(in, f)
	require.Len(t, out, 2)
	assert.Equal(t, "min", out[0].ID)
	assert.Equal(t, "max", out[1].ID)
}

func TestFilter_FechasExclusivas(t *testing.T) {
	start := t0
	end := t0.Add(48 * time.Hour)
	in := []entity.Sale{
		rec("on-start", "A", "1", "1", 1, start),
		rec("inside", "A", "1", "1", 1, start.Add(time.Second)),
		rec("on-end", "A", "1", "1", 1, end),
		rec("before", "A", "1", "1", 1, start.Add(-time.Hour)),
	}
	f := openFilters()
	f.StartDate = &start
	f.EndDate = &end

	out := dashboard.Filter(in, f)
	require.Len(t, out, 1)
	assert.Equal(t, "inside", out[0].ID)
}

func TestFilter_CategoriaSubcadenaSinMayusculas(t *testing.T) {
	in := []entity.Sale{
		rec("1", "Electronics", "1", "1", 1, t0),
		rec("2", "HOME & KITCHEN", "1", "1", 1, t0),
		rec("3", "Books", "1", "1", 1, t0),
		rec("4", "Straße", "1", "1", 1, t0),
	}

	f := openFilters()
	f.Category = "kitchen"
	out := dashboard.Filter(in, f)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	f.Category = "TRON"
	out = dashboard.Filter(in, f)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)

	// Solo minúsculas, sin plegado: "ß" no equivale a "ss" en ningún sentido.
	f.Category = "STRASSE"
	assert.Empty(t, dashboard.Filter(in, f))

	f.Category = "STRAßE"
	out = dashboard.Filter(in, f)
	require.Len(t, out, 1)
	assert.Equal(t, "4", out[0].ID)
}

func TestFilter_Categoria_EquivaleAContainsEnMinusculas(t *testing.T) {
	cats := []string{"Straße", "SS Goods", "Électronique", "HOME & KITCHEN", "books"}
	filters := []string{"STRASSE", "ß", "ss", "éLEC", "kitchen", "Books", " "}

	for _, cat := range cats {
		s := rec("x", cat, "1", "1", 1, t0)
		for _, term := range filters {
			f := openFilters()
			f.Category = term
			want := strings.Contains(strings.ToLower(cat), strings.ToLower(term))
			assert.Equal(t, want, dashboard.Matches(s, f), "cat=%q filtro=%q", cat, term)
			assert.Equal(t, want, len(dashboard.Filter([]entity.Sale{s}, f)) == 1, "cat=%q filtro=%q", cat, term)
		}
	}
}

func TestFilter_PropiedadDelPredicado(t *testing.T) {
	in := randomSales(7, 200)
	start := t0.Add(24 * time.Hour)
	end := t0.Add(7 * 24 * time.Hour)
	f := entity.Filters{
		StartDate: &start, EndDate: &end,
		MinPrice: dec("50"), MaxPrice: ptr(dec("400")),
		Category: "ELEC",
	}

	out := dashboard.Filter(in, f)
	kept := make(map[string]bool, len(out))
	for _, s := range out {
		kept[s.ID] = true
	}
	for _, s := range in {
		want := !s.Price.LessThan(f.MinPrice) && !s.Price.GreaterThan(*f.MaxPrice) &&
			(s.Category == "Electronics" || s.Category == "electronics") &&
			s.Timestamp.After(start) && s.Timestamp.Before(end)
		assert.Equal(t, want, kept[s.ID], s.ID)
		assert.Equal(t, want, dashboard.Matches(s, f), s.ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateByCategory_OrdenDePrimeraAparicion(t *testing.T) {
	in := []entity.Sale{
		rec("1", "Books", "1", "5", 1, t0),
		rec("2", "Electronics", "1", "7", 2, t0),
		rec("3", "Books", "1", "3", 4, t0),
		rec("4", "books", "1", "1", 1, t0),
	}
	out := dashboard.AggregateByCategory(in)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Books", "Electronics", "books"},
		[]string{out[0].Category, out[1].Category, out[2].Category})
	assert.True(t, out[0].Revenue.Equal(dec("8")))
	assert.Equal(t, int64(5), out[0].Quantity)
}

func TestAggregateByCategory_SumasYUnicidad(t *testing.T) {
	in := randomSales(3, 100)
	out := dashboard.AggregateByCategory(in)

	revenue, qty := decimal.Zero, int64(0)
	seen := make(map[string]int)
	for _, c := range out {
		revenue = revenue.Add(c.Revenue)
		qty += c.Quantity
		seen[c.Category]++
	}
	var wantQty int64
	distinct := make(map[string]struct{})
	for _, s := range in {
		wantQty += s.QuantitySold
		distinct[s.Category] = struct{}{}
	}
	assert.True(t, revenue.Equal(sumRevenue(in)))
	assert.Equal(t, wantQty, qty)
	assert.Len(t, seen, len(distinct))
	for cat, n := range seen {
		assert.Equal(t, 1, n, cat)
	}
}

func TestAggregateByCategory_Vacio(t *testing.T) {
	out := dashboard.AggregateByCategory(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAggregateByDay_MismoDiaMismoBucket(t *testing.T) {
	in := []entity.Sale{
		rec("1", "A", "1", "10", 1, time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)),
		rec("2", "A", "1", "5", 1, time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC)),
		rec("3", "A", "1", "2.5", 1, time.Date(2025, 1, 10, 22, 59, 0, 0, time.UTC)),
	}
	out := dashboard.AggregateByDay(in, utcKeyer)
	require.Len(t, out, 2)
	assert.Equal(t, "1/10/2025", out[0].Date)
	assert.True(t, out[0].Revenue.Equal(dec("12.5")))
	assert.Equal(t, "1/9/2025", out[1].Date)
}

func TestAggregateByDay_SumaIgualAlTotal(t *testing.T) {
	in := randomSales(11, 100)
	total := decimal.Zero
	for _, d := range dashboard.AggregateByDay(in, utcKeyer) {
		total = total.Add(d.Revenue)
	}
	assert.True(t, total.Equal(sumRevenue(in)))
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildView
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildView_Idempotente(t *testing.T) {
	in := randomSales(5, 80)
	f := entity.Filters{MinPrice: dec("10"), MaxPrice: ptr(dec("300")), Category: "o"}

	a := dashboard.BuildView(in, f, utcKeyer)
	b := dashboard.BuildView(in, f, utcKeyer)
	assert.Equal(t, a, b)
}

func TestBuildView_Totales(t *testing.T) {
	in := []entity.Sale{
		rec("1", "A", "5", "10", 2, t0),
		rec("2", "B", "5", "20.5", 3, t0),
	}
	v := dashboard.BuildView(in, openFilters(), utcKeyer)
	assert.Equal(t, 2, v.Totals.Count)
	assert.Equal(t, int64(5), v.Totals.Quantity)
	assert.True(t, v.Totals.Revenue.Equal(dec("30.5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseFilters
// ──────────────────────────────────────────────────────────────────────────────

func TestParseFilters_ValoresPorDefecto(t *testing.T) {
	f, err := dashboard.ParseFilters(dto.DashboardRequest{}, time.UTC, entity.DefaultMaxPrice)
	require.NoError(t, err)
	assert.True(t, f.MinPrice.IsZero())
	require.NotNil(t, f.MaxPrice)
	assert.True(t, f.MaxPrice.Equal(dec("500")))
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	assert.Equal(t, "", f.Category)
}

func TestParseFilters_FechasYPrecios(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	f, err := dashboard.ParseFilters(dto.DashboardRequest{
		StartDate: "2025-01-10",
		EndDate:   "2025-01-20T10:00:00Z",
		MinPrice:  "12.50",
		MaxPrice:  "99",
		Category:  " Books ",
	}, bogota, entity.DefaultMaxPrice)
	require.NoError(t, err)

	assert.True(t, f.StartDate.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, bogota)))
	assert.True(t, f.EndDate.Equal(time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)))
	assert.True(t, f.MinPrice.Equal(dec("12.5")))
	assert.True(t, f.MaxPrice.Equal(dec("99")))
	assert.Equal(t, " Books ", f.Category, "la categoría no se recorta")
}

func TestParseFilters_Invalidos(t *testing.T) {
	cases := map[string]dto.DashboardRequest{
		"fecha":          {StartDate: "10/01/2025"},
		"fecha fin":      {EndDate: "ayer"},
		"precio":         {MinPrice: "diez"},
		"precio max":     {MaxPrice: "1e"},
		"negativo":       {MinPrice: "-1"},
		"min mayor max":  {MinPrice: "50", MaxPrice: "10"},
		"min mayor tope": {MinPrice: "600"},
	}
	for name, req := range cases {
		_, err := dashboard.ParseFilters(req, time.UTC, entity.DefaultMaxPrice)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DashboardUseCase
// ──────────────────────────────────────────────────────────────────────────────

type stubStates struct{ st sales.State }

func (s stubStates) Snapshot() sales.State { return s.st }

func newUC(st sales.State) *dashboard.DashboardUseCase {
	return dashboard.NewDashboardUseCase(stubStates{st: st}, utcKeyer, time.UTC, entity.DefaultMaxPrice)
}

func TestGetDashboard_CargandoTienePrioridad(t *testing.T) {
	uc := newUC(sales.State{Loading: true, Err: domain.NewFetchError("fetch", errors.New("boom"))})
	_, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestGetDashboard_ErrorSinDatosParciales(t *testing.T) {
	uc := newUC(sales.State{
		Sales: []entity.Sale{rec("1", "A", "1", "1", 1, t0)},
		Err:   domain.NewFetchError("search", errors.New("parsing_exception")),
	})
	view, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	assert.Nil(t, view)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, "parsing_exception", err.Error())
}

func TestGetDashboard_FiltrosInvalidosAntesQueEstado(t *testing.T) {
	uc := newUC(sales.State{Loading: true})
	_, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{MinPrice: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDashboard_Listo(t *testing.T) {
	fetched := t0.Add(time.Hour)
	uc := newUC(sales.State{
		Sales: []entity.Sale{
			rec("1", "A", "5", "10", 1, t0),
			rec("2", "B", "700", "700", 1, t0),
		},
		LastQuery: "item",
		FetchedAt: fetched,
	})

	out, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStatusReady, out.Status)
	assert.Equal(t, "item", out.LastQuery)
	require.NotNil(t, out.FetchedAt)
	assert.True(t, out.FetchedAt.Equal(fetched))
	require.Len(t, out.Sales, 1)
	assert.Equal(t, "1", out.Sales[0].ID)
	assert.Equal(t, 1, out.Totals.Count)
	require.Len(t, out.Daily, 1)
	assert.Equal(t, "1/10/2025", out.Daily[0].Date)
}

func TestGetDashboard_SinVentas_ListasVacias(t *testing.T) {
	out, err := newUC(sales.State{Sales: []entity.Sale{}}).GetDashboard(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err)
	assert.NotNil(t, out.Sales)
	assert.NotNil(t, out.Categories)
	assert.NotNil(t, out.Daily)
	assert.Nil(t, out.FetchedAt)
}
