// Package sales contiene el caso de uso que obtiene las ventas del índice de
// búsqueda y mantiene el estado (ventas, cargando, error) que consume el dashboard.
package sales

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/sales-dashboard/internal/domain"
	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard/internal/domain/repository"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

const (
	opFetch  = "fetch"
	opSearch = "search"

	// DefaultFetchSize máximo de ventas del fetch inicial.
	DefaultFetchSize = 100
)

// ErrStaleResponse indica que la respuesta llegó después de que se emitiera una
// petición más reciente y se descartó sin tocar el estado.
var ErrStaleResponse = errors.New("respuesta descartada: existe una petición más reciente")

// State es la tripleta (ventas, cargando, error) más metadatos. Es inmutable:
// cada cambio publica un valor nuevo completo, nunca se modifica en sitio.
type State struct {
	Sales     []entity.Sale
	Loading   bool
	Err       error // *domain.FetchError o nil
	Seq       uint64
	LastQuery string // "" tras el fetch inicial; el término tras un search
	FetchedAt time.Time
}

// SalesUseCase obtiene ventas (fetch inicial o búsqueda) y publica el estado.
//
// Concurrencia: cada petición recibe un número de secuencia al emitirse. Al
// completar, solo se aplica si sigue siendo la última emitida; si no, se descarta.
// Un único mutex serializa las escrituras; las lecturas (Snapshot) no bloquean.
type SalesUseCase struct {
	source    repository.SalesSource
	fetchSize int
	log       *logger.Logger
	now       func() time.Time

	mu     sync.Mutex
	issued uint64
	state  atomic.Pointer[State]
}

// NewSalesUseCase construye el caso de uso. El estado inicial es "cargando",
// a la espera del fetch inicial.
func NewSalesUseCase(source repository.SalesSource, fetchSize int, log *logger.Logger) *SalesUseCase {
	if fetchSize <= 0 {
		fetchSize = DefaultFetchSize
	}
	if log == nil {
		log = logger.Nop()
	}
	uc := &SalesUseCase{
		source:    source,
		fetchSize: fetchSize,
		log:       log.Component("sales"),
		now:       time.Now,
	}
	uc.state.Store(&State{Loading: true})
	return uc
}

// Snapshot devuelve el estado publicado más reciente.
func (uc *SalesUseCase) Snapshot() State {
	return *uc.state.Load()
}

// FetchInitial pide las ventas más recientes (hasta fetchSize, timestamp descendente).
// Éxito: reemplaza las ventas y limpia el error. Fallo: fija el error y conserva las ventas previas.
func (uc *SalesUseCase) FetchInitial(ctx context.Context) error {
	return uc.run(ctx, opFetch, "", func(ctx context.Context) ([]entity.Sale, error) {
		return uc.source.FetchLatest(ctx, uc.fetchSize)
	})
}

// Refresh vuelve a ejecutar el fetch inicial.
func (uc *SalesUseCase) Refresh(ctx context.Context) error {
	return uc.FetchInitial(ctx)
}

// Search pide las ventas cuyo name o category coinciden con term. term no se
// recorta ni se valida: un término vacío también viaja al backend.
func (uc *SalesUseCase) Search(ctx context.Context, term string) error {
	return uc.run(ctx, opSearch, term, func(ctx context.Context) ([]entity.Sale, error) {
		return uc.source.Search(ctx, term)
	})
}

func (uc *SalesUseCase) run(
	ctx context.Context,
	op, term string,
	call func(context.Context) ([]entity.Sale, error),
) error {
	seq := uc.begin()
	uc.log.Debug().Str("op", op).Uint64("seq", seq).Str("term", term).Msg("petición al índice emitida")

	sales, err := call(ctx)
	var fetchErr error
	if err != nil {
		fetchErr = domain.NewFetchError(op, err)
	}

	if !uc.complete(seq, term, sales, fetchErr) {
		uc.log.Debug().Str("op", op).Uint64("seq", seq).Msg("respuesta obsoleta descartada")
		if fetchErr != nil {
			return errors.Join(ErrStaleResponse, fetchErr)
		}
		return ErrStaleResponse
	}

	if fetchErr != nil {
		uc.log.Error().Err(err).Str("op", op).Uint64("seq", seq).Msg("consulta al índice fallida")
		return fetchErr
	}
	uc.log.Info().Str("op", op).Uint64("seq", seq).Int("records", len(sales)).Msg("ventas actualizadas")
	return nil
}

// begin emite un nuevo número de secuencia y marca el estado como cargando.
func (uc *SalesUseCase) begin() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.issued++
	next := *uc.state.Load()
	next.Loading = true
	next.Seq = uc.issued
	uc.state.Store(&next)
	return uc.issued
}

// complete publica el resultado de la petición seq si sigue siendo la última emitida.
func (uc *SalesUseCase) complete(seq uint64, term string, sales []entity.Sale, fetchErr error) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if seq != uc.issued {
		return false
	}

	next := *uc.state.Load()
	next.Loading = false
	if fetchErr != nil {
		next.Err = fetchErr
	} else {
		if sales == nil {
			sales = []entity.Sale{}
		}
		next.Sales = sales
		next.Err = nil
		next.LastQuery = term
		next.FetchedAt = uc.now()
	}
	uc.state.Store(&next)
	return true
}
