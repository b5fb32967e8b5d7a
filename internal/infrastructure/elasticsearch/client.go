// Package elasticsearch implementa los puertos SalesSource y SalesIndexer sobre
// la API REST de Elasticsearch/OpenSearch (_search, _doc, _refresh).
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/sales-dashboard/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard/internal/domain/repository"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa ambos puertos.
var (
	_ repository.SalesSource  = (*Client)(nil)
	_ repository.SalesIndexer = (*Client)(nil)
)

// DefaultIndex índice de ventas cuando no se configura otro.
const DefaultIndex = "product_sales"

// maxErrorBody límite de bytes del cuerpo incluidos en un mensaje de error.
const maxErrorBody = 512

// Config parámetros de conexión.
type Config struct {
	BaseURL  string         // ej. http://localhost:9200
	Index    string         // "" = DefaultIndex
	Timeout  time.Duration  // 0 = sin timeout propio (manda el contexto)
	Location *time.Location // zona para timestamps sin offset; nil = time.Local
}

// Client adaptador HTTP del índice de ventas.
type Client struct {
	http  *resty.Client
	index string
	loc   *time.Location
}

// NewClient construye el adaptador. log puede ser nil.
func NewClient(cfg Config, log *logger.Logger) *Client {
	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if log != nil {
		rc.SetLogger(logger.Printf{L: log.Component("elasticsearch")})
	}

	return &Client{http: rc, index: index, loc: loc}
}

// ── Lectura ───────────────────────────────────────────────────────────────────

// FetchLatest envía {size, sort: timestamp desc, query: match_all}.
func (c *Client) FetchLatest(ctx context.Context, size int) ([]entity.Sale, error) {
	return c.search(ctx, newFetchLatestRequest(size))
}

// Search envía {query: multi_match(term, [name, category])}. term viaja sin modificar.
func (c *Client) Search(ctx context.Context, term string) ([]entity.Sale, error) {
	return c.search(ctx, newMultiMatchRequest(term))
}

func (c *Client) search(ctx context.Context, body searchRequest) ([]entity.Sale, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("index", c.index).
		SetBody(body).
		Post("/{index}/_search")
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("elasticsearch: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("elasticsearch: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		return nil, httpError(resp)
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("elasticsearch: deserializar respuesta: %w", err)
	}

	sales := make([]entity.Sale, 0, len(parsed.Hits.Hits))
	for i, h := range parsed.Hits.Hits {
		sale, err := h.toSale(c.loc)
		if err != nil {
			return nil, fmt.Errorf("elasticsearch: hit %d (%s): %w", i, h.ID, err)
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// ── Escritura (seed) ──────────────────────────────────────────────────────────

// Index guarda la venta como documento con _id = sale.ID (PUT /{index}/_doc/{id}).
func (c *Client) Index(ctx context.Context, sale entity.Sale) error {
	if sale.ID == "" {
		return fmt.Errorf("elasticsearch: la venta no tiene ID")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"index": c.index, "id": sale.ID}).
		SetBody(newSaleDocument(sale)).
		Put("/{index}/_doc/{id}")
	if err != nil {
		return fmt.Errorf("elasticsearch: indexar %s: %w", sale.ID, err)
	}
	if resp.IsError() {
		return httpError(resp)
	}
	return nil
}

// Refresh hace visibles los documentos recién indexados (POST /{index}/_refresh).
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("index", c.index).
		Post("/{index}/_refresh")
	if err != nil {
		return fmt.Errorf("elasticsearch: refresh: %w", err)
	}
	if resp.IsError() {
		return httpError(resp)
	}
	return nil
}

// httpError arma el error a partir del cuerpo {error:{type,reason}} si existe.
func httpError(resp *resty.Response) error {
	var errResp errorResponse
	if jsonErr := json.Unmarshal(resp.Body(), &errResp); jsonErr == nil && errResp.Error.Reason != "" {
		return fmt.Errorf("elasticsearch: HTTP %d (%s): %s", resp.StatusCode(), errResp.Error.Type, errResp.Error.Reason)
	}
	body := resp.Body()
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Errorf("elasticsearch: HTTP %d: %s", resp.StatusCode(), string(body))
}
