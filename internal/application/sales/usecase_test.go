package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-dashboard/internal/application/sales"
	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type result struct {
	sales []entity.Sale
	err   error
}

// scriptedSource responde con resultados fijos; si gate != nil, cada llamada
// espera a recibir su resultado por ese canal.
type scriptedSource struct {
	mu      sync.Mutex
	fetch   result
	search  result
	terms   []string
	sizes   []int
	gate    chan result
	started chan string
}

func (s *scriptedSource) FetchLatest(_ context.Context, size int) ([]entity.Sale, error) {
	s.mu.Lock()
	s.sizes = append(s.sizes, size)
	r := s.fetch
	s.mu.Unlock()
	return s.wait("fetch", r)
}

func (s *scriptedSource) Search(_ context.Context, term string) ([]entity.Sale, error) {
	s.mu.Lock()
	s.terms = append(s.terms, term)
	r := s.search
	s.mu.Unlock()
	return s.wait("search:"+term, r)
}

func (s *scriptedSource) wait(label string, r result) ([]entity.Sale, error) {
	if s.started != nil {
		s.started <- label
	}
	if s.gate != nil {
		r = <-s.gate
	}
	return r.sales, r.err
}

func mkSales(ids ...string) []entity.Sale {
	out := make([]entity.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Sale{
			ID: id, Name: "n", Category: "c",
			Price: decimal.NewFromInt(1), Revenue: decimal.NewFromInt(1), QuantitySold: 1,
			Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func ids(sales []entity.Sale) []string {
	out := make([]string, 0, len(sales))
	for _, s := range sales {
		out = append(out, s.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado inicial / éxito / fallo
// ──────────────────────────────────────────────────────────────────────────────

func TestNewSalesUseCase_EstadoInicialCargando(t *testing.T) {
	uc := sales.NewSalesUseCase(&scriptedSource{}, 0, nil)
	st := uc.Snapshot()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Err)
	assert.Empty(t, st.Sales)
}

func TestFetchInitial_Exito(t *testing.T) {
	src := &scriptedSource{fetch: result{sales: mkSales("a", "b")}}
	uc := sales.NewSalesUseCase(src, 0, nil)

	require.NoError(t, uc.FetchInitial(context.Background()))
	st := uc.Snapshot()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Err)
	assert.Equal(t, []string{"a", "b"}, ids(st.Sales))
	assert.Equal(t, "", st.LastQuery)
	assert.False(t, st.FetchedAt.IsZero())
	assert.Equal(t, []int{sales.DefaultFetchSize}, src.sizes)
}

func TestFetchInitial_ResultadoNil_SliceVacio(t *testing.T) {
	uc := sales.NewSalesUseCase(&scriptedSource{}, 10, nil)
	require.NoError(t, uc.FetchInitial(context.Background()))
	st := uc.Snapshot()
	assert.NotNil(t, st.Sales)
	assert.Empty(t, st.Sales)
}

func TestSearch_Fallo_ConservaVentasPrevias(t *testing.T) {
	src := &scriptedSource{
		fetch:  result{sales: mkSales("a", "b")},
		search: result{err: errors.New("search_phase_execution_exception")},
	}
	uc := sales.NewSalesUseCase(src, 0, nil)
	require.NoError(t, uc.FetchInitial(context.Background()))

	err := uc.Search(context.Background(), "watch")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)

	st := uc.Snapshot()
	assert.False(t, st.Loading)
	require.Error(t, st.Err)
	assert.Equal(t, "search_phase_execution_exception", st.Err.Error())
	assert.Equal(t, []string{"a", "b"}, ids(st.Sales), "las ventas no cambian")
	assert.Equal(t, "", st.LastQuery)

	var fe *domain.FetchError
	require.ErrorAs(t, st.Err, &fe)
	assert.Equal(t, "search", fe.Op)
}

func TestFetchInitial_ExitoLimpiaError(t *testing.T) {
	src := &scriptedSource{fetch: result{err: errors.New("timeout")}}
	uc := sales.NewSalesUseCase(src, 0, nil)
	require.Error(t, uc.FetchInitial(context.Background()))
	require.Error(t, uc.Snapshot().Err)

	src.fetch = result{sales: mkSales("x")}
	require.NoError(t, uc.Refresh(context.Background()))
	st := uc.Snapshot()
	assert.Nil(t, st.Err)
	assert.Equal(t, []string{"x"}, ids(st.Sales))
}

func TestSearch_TerminoVacio_SeEnviaSinCambios(t *testing.T) {
	src := &scriptedSource{search: result{sales: mkSales("a")}}
	uc := sales.NewSalesUseCase(src, 0, nil)

	require.NoError(t, uc.Search(context.Background(), ""))
	require.NoError(t, uc.Search(context.Background(), "  "))
	assert.Equal(t, []string{"", "  "}, src.terms)
	assert.Equal(t, "  ", uc.Snapshot().LastQuery)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestLoading_DuranteLaPeticion(t *testing.T) {
	src := &scriptedSource{gate: make(chan result), started: make(chan string, 1)}
	uc := sales.NewSalesUseCase(src, 0, nil)

	// Primer fetch completo para salir del estado inicial.
	done := make(chan error, 1)
	go func() { done <- uc.FetchInitial(context.Background()) }()
	<-src.started
	src.gate <- result{sales: mkSales("a")}
	require.NoError(t, <-done)
	require.False(t, uc.Snapshot().Loading)

	go func() { done <- uc.Search(context.Background(), "w") }()
	<-src.started

	st := uc.Snapshot()
	assert.True(t, st.Loading, "cargando mientras la petición está en vuelo")
	assert.Equal(t, []string{"a"}, ids(st.Sales), "las ventas previas siguen visibles")

	src.gate <- result{sales: mkSales("b")}
	require.NoError(t, <-done)
	assert.False(t, uc.Snapshot().Loading)
}

func TestRespuestaObsoleta_SeDescarta(t *testing.T) {
	src := &scriptedSource{gate: make(chan result), started: make(chan string, 2)}
	uc := sales.NewSalesUseCase(src, 0, nil)

	fetchDone := make(chan error, 1)
	go func() { fetchDone <- uc.FetchInitial(context.Background()) }()
	require.Equal(t, "fetch", <-src.started)

	searchDone := make(chan error, 1)
	go func() { searchDone <- uc.Search(context.Background(), "watch") }()
	require.Equal(t, "search:watch", <-src.started)

	// Cuál de las dos recibe cada resultado es indiferente: la búsqueda es la última emitida.
	src.gate <- result{sales: mkSales("first")}
	src.gate <- result{sales: mkSales("second")}

	errFetch := <-fetchDone
	errSearch := <-searchDone

	// La búsqueda se emitió después: nunca es obsoleta y su resultado es el visible.
	require.NoError(t, errSearch)
	assert.ErrorIs(t, errFetch, sales.ErrStaleResponse)

	st := uc.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, "watch", st.LastQuery)
	assert.Len(t, st.Sales, 1)
}

func TestRespuestaObsoletaConError_NoTocaElEstado(t *testing.T) {
	src := &scriptedSource{gate: make(chan result), started: make(chan string, 2)}
	uc := sales.NewSalesUseCase(src, 0, nil)

	searchDone := make(chan error, 1)
	go func() { searchDone <- uc.Search(context.Background(), "old") }()
	<-src.started

	fetchDone := make(chan error, 1)
	go func() { fetchDone <- uc.FetchInitial(context.Background()) }()
	<-src.started

	src.gate <- result{err: errors.New("boom")}
	src.gate <- result{err: errors.New("boom")}
	errOld := <-searchDone
	errNew := <-fetchDone

	assert.ErrorIs(t, errOld, sales.ErrStaleResponse)
	assert.ErrorIs(t, errOld, domain.ErrFetchFailed)
	assert.ErrorIs(t, errNew, domain.ErrFetchFailed)
	assert.NotErrorIs(t, errNew, sales.ErrStaleResponse)

	st := uc.Snapshot()
	require.Error(t, st.Err)
	var fe *domain.FetchError
	require.ErrorAs(t, st.Err, &fe)
	assert.Equal(t, "fetch", fe.Op, "el error visible es el de la última petición emitida")
}

func TestSnapshot_LecturasConcurrentes(t *testing.T) {
	src := &scriptedSource{fetch: result{sales: mkSales("a", "b", "c")}}
	uc := sales.NewSalesUseCase(src, 0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = uc.FetchInitial(context.Background())
		}()
		go func() {
			defer wg.Done()
			st := uc.Snapshot()
			// Nunca se observa un estado a medio escribir.
			if !st.Loading && st.Err == nil && st.Sales != nil {
				assert.Len(t, st.Sales, 3)
			}
		}()
	}
	wg.Wait()
	assert.False(t, uc.Snapshot().Loading)
}
