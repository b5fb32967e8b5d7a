package repository

import (
	"context"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// SalesSource define el puerto de lectura contra el índice de ventas (DIP).
// Las implementaciones devuelven el lote completo o un error; nunca resultados parciales.
type SalesSource interface {
	// FetchLatest devuelve hasta size ventas, las más recientes primero, sin filtro de query.
	FetchLatest(ctx context.Context, size int) ([]entity.Sale, error)

	// Search devuelve las ventas cuyo name o category coinciden con term según el
	// motor de texto del backend. term se envía tal cual, incluso vacío.
	Search(ctx context.Context, term string) ([]entity.Sale, error)
}

// SalesIndexer define el puerto de escritura usado para poblar el índice con datos de ejemplo.
type SalesIndexer interface {
	Index(ctx context.Context, sale entity.Sale) error
	Refresh(ctx context.Context) error
}
