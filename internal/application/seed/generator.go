// Package seed genera ventas de ejemplo y las carga en el índice de búsqueda.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// DefaultCount límite de documentos por ejecución. En la práctica se generan
// unos 31: uno por día desde hace 30 días hasta hoy.
const DefaultCount = 500

// lookbackDays días hacia atrás desde los que arranca la serie.
const lookbackDays = 30

var (
	// Categories categorías de producto del catálogo de ejemplo.
	Categories = []string{
		"Electronics", "Clothing", "Home & Kitchen",
		"Sports & Outdoors", "Books", "Toys & Games",
	}
	adjectives = []string{"Wireless", "Smart", "Premium", "Classic"}
	nouns      = []string{"Headphones", "Watch", "Speaker", "Camera"}
)

// Rango (uniforme) del precio unitario.
const (
	minPrice = 10.0
	maxPrice = 500.0
)

// Generator produce ventas pseudoaleatorias reproducibles a partir de una semilla.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator crea un generador. now == nil usa time.Now.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), now: now}
}

// Generate devuelve hasta count ventas, una por día a partir de hace 30 días;
// se detiene en cuanto la fecha supera el instante actual.
func (g *Generator) Generate(count int) ([]entity.Sale, error) {
	if count <= 0 {
		count = DefaultCount
	}
	now := g.now()
	current := now.AddDate(0, 0, -lookbackDays)

	sales := make([]entity.Sale, 0, lookbackDays+1)
	for i := 0; i < count; i++ {
		sale, err := g.next(current)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)

		current = current.AddDate(0, 0, 1)
		if current.After(now) {
			break
		}
	}
	return sales, nil
}

func (g *Generator) next(ts time.Time) (entity.Sale, error) {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return entity.Sale{}, fmt.Errorf("generar id: %w", err)
	}

	price := decimal.NewFromFloat(minPrice + g.rnd.Float64()*(maxPrice-minPrice)).Round(2)
	qty := int64(g.rnd.Intn(20) + 1)

	return entity.Sale{
		ID:           id.String(),
		Name:         pick(g.rnd, adjectives) + " " + pick(g.rnd, nouns),
		Category:     pick(g.rnd, Categories),
		Price:        price,
		QuantitySold: qty,
		Revenue:      price.Mul(decimal.NewFromInt(qty)).Round(2),
		Timestamp:    ts,
		IsDiscounted: g.rnd.Intn(2) == 1,
	}, nil
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
