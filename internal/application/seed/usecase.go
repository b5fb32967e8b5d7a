package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard/internal/domain/repository"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

// SeedUseCase indexa las ventas generadas y refresca el índice al final.
type SeedUseCase struct {
	indexer   repository.SalesIndexer
	generator *Generator
	log       *logger.Logger
}

// NewSeedUseCase construye el caso de uso. log puede ser nil.
func NewSeedUseCase(indexer repository.SalesIndexer, generator *Generator, log *logger.Logger) *SeedUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SeedUseCase{indexer: indexer, generator: generator, log: log.Component("seed")}
}

// Run genera hasta count ventas, las indexa una a una y hace refresh.
// Ante el primer error se detiene; devuelve cuántas se indexaron.
func (uc *SeedUseCase) Run(ctx context.Context, count int) (int, error) {
	sales, err := uc.generator.Generate(count)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	indexed, err := uc.indexAll(ctx, sales)
	if err != nil {
		return indexed, err
	}

	if err := uc.indexer.Refresh(ctx); err != nil {
		return indexed, fmt.Errorf("seed: refresh: %w", err)
	}
	uc.log.Info().Int("records", indexed).Msg("datos de ejemplo generados en el índice")
	return indexed, nil
}

func (uc *SeedUseCase) indexAll(ctx context.Context, sales []entity.Sale) (int, error) {
	for i, s := range sales {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("seed: cancelado: %w", err)
		}
		if err := uc.indexer.Index(ctx, s); err != nil {
			return i, fmt.Errorf("seed: indexar %s: %w", s.ID, err)
		}
		uc.log.Debug().Str("id", s.ID).Time("timestamp", s.Timestamp).Msg("venta indexada")
	}
	return len(sales), nil
}
