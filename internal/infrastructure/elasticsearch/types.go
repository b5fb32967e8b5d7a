package elasticsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
)

// ── Request ───────────────────────────────────────────────────────────────────

type searchRequest struct {
	Size  int                    `json:"size,omitempty"`
	Sort  []map[string]sortOrder `json:"sort,omitempty"`
	Query query                  `json:"query"`
}

type sortOrder struct {
	Order string `json:"order"`
}

type query struct {
	MatchAll   *struct{}   `json:"match_all,omitempty"`
	MultiMatch *multiMatch `json:"multi_match,omitempty"`
}

type multiMatch struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
}

// searchFields campos sobre los que se evalúa el término de búsqueda.
var searchFields = []string{"name", "category"}

func newFetchLatestRequest(size int) searchRequest {
	return searchRequest{
		Size:  size,
		Sort:  []map[string]sortOrder{{"timestamp": {Order: "desc"}}},
		Query: query{MatchAll: &struct{}{}},
	}
}

func newMultiMatchRequest(term string) searchRequest {
	return searchRequest{
		Query: query{MultiMatch: &multiMatch{Query: term, Fields: searchFields}},
	}
}

// ── Response ──────────────────────────────────────────────────────────────────

type searchResponse struct {
	Hits struct {
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

type hit struct {
	ID     string     `json:"_id"`
	Source saleSource `json:"_source"`
}

type saleSource struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Timestamp    json.RawMessage `json:"timestamp"`
	IsDiscounted bool            `json:"is_discounted"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// toSale combina _id con los campos de _source.
func (h hit) toSale(loc *time.Location) (entity.Sale, error) {
	ts, err := parseTimestamp(h.Source.Timestamp, loc)
	if err != nil {
		return entity.Sale{}, err
	}
	return entity.Sale{
		ID:           h.ID,
		Name:         h.Source.Name,
		Category:     h.Source.Category,
		Price:        h.Source.Price,
		QuantitySold: h.Source.QuantitySold.IntPart(),
		Revenue:      h.Source.Revenue,
		Timestamp:    ts,
		IsDiscounted: h.Source.IsDiscounted,
	}, nil
}

// ── Documento (escritura) ─────────────────────────────────────────────────────

// saleDocument forma del _source que escribe el seeder. Los importes viajan
// como números JSON.
type saleDocument struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Price        json.Number `json:"price"`
	QuantitySold int64       `json:"quantity_sold"`
	Revenue      json.Number `json:"revenue"`
	Timestamp    string      `json:"timestamp"`
	IsDiscounted bool        `json:"is_discounted"`
}

func newSaleDocument(s entity.Sale) saleDocument {
	return saleDocument{
		Name:         s.Name,
		Category:     s.Category,
		Price:        json.Number(s.Price.String()),
		QuantitySold: s.QuantitySold,
		Revenue:      json.Number(s.Revenue.String()),
		Timestamp:    s.Timestamp.Format(time.RFC3339Nano),
		IsDiscounted: s.IsDiscounted,
	}
}

// ── Timestamps ────────────────────────────────────────────────────────────────

// naiveLayouts formatos ISO-8601 sin zona; se interpretan en la zona configurada.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp acepta RFC 3339, ISO-8601 sin zona y epoch en milisegundos.
func parseTimestamp(raw json.RawMessage, loc *time.Location) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, fmt.Errorf("timestamp ausente")
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("timestamp numérico inválido %s: %w", raw, err)
		}
		return time.UnixMilli(ms).In(loc), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("timestamp inválido: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp con formato no soportado: %q", s)
}
