package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

var _ ports.CatalogReader = (*CatalogCache)(nil)

type catalogKey struct {
	docType  string
	customer string
}

// CatalogCache caché en memoria con TTL de cabeceras y líneas de orden por (tipo, contraparte).
// La búsqueda de stock libre no se cachea. Solo se guardan respuestas correctas.
//
// Cada clave lleva una generación que Invalidate incrementa: una carga que empezó antes
// de invalidar no escribe su resultado. Las cargas simultáneas de la misma clave y
// generación comparten una sola llamada al ERP.
type CatalogCache struct {
	next ports.CatalogReader
	ttl  time.Duration

	headers *ttlcache.Cache[catalogKey, []entity.OrderHeader]
	lines   *ttlcache.Cache[catalogKey, []entity.OrderLine]
	flight  singleflight.Group

	mu   sync.Mutex
	gens map[catalogKey]uint64
}

// NewCatalogCache envuelve next. ttl <= 0 desactiva la caché.
func NewCatalogCache(next ports.CatalogReader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		next: next,
		ttl:  ttl,
		headers: ttlcache.New[catalogKey, []entity.OrderHeader](
			ttlcache.WithTTL[catalogKey, []entity.OrderHeader](ttl),
			ttlcache.WithDisableTouchOnHit[catalogKey, []entity.OrderHeader](),
		),
		lines: ttlcache.New[catalogKey, []entity.OrderLine](
			ttlcache.WithTTL[catalogKey, []entity.OrderLine](ttl),
			ttlcache.WithDisableTouchOnHit[catalogKey, []entity.OrderLine](),
		),
		gens: make(map[catalogKey]uint64),
	}
}

func (c *CatalogCache) ListOrderHeaders(ctx context.Context, docType, customerCode string) ([]entity.OrderHeader, error) {
	return cached(ctx, c, "headers", c.headers, catalogKey{docType, customerCode}, func(ctx context.Context) ([]entity.OrderHeader, error) {
		return c.next.ListOrderHeaders(ctx, docType, customerCode)
	})
}

func (c *CatalogCache) ListOrderLines(ctx context.Context, docType, customerCode string) ([]entity.OrderLine, error) {
	return cached(ctx, c, "lines", c.lines, catalogKey{docType, customerCode}, func(ctx context.Context) ([]entity.OrderLine, error) {
		return c.next.ListOrderLines(ctx, docType, customerCode)
	})
}

func (c *CatalogCache) SearchStock(ctx context.Context, query string) ([]entity.StockRecord, error) {
	return c.next.SearchStock(ctx, query)
}

// Invalidate descarta cabeceras y líneas de la contraparte para el tipo dado, incluidas
// las que se estén cargando en este momento.
func (c *CatalogCache) Invalidate(docType, customerCode string) {
	k := catalogKey{docType, customerCode}
	c.mu.Lock()
	c.gens[k]++
	c.headers.Delete(k)
	c.lines.Delete(k)
	c.mu.Unlock()
}

func (c *CatalogCache) generation(k catalogKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[k]
}

func cached[T any](
	ctx context.Context,
	c *CatalogCache,
	kind string,
	store *ttlcache.Cache[catalogKey, []T],
	k catalogKey,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	if c.ttl <= 0 {
		return load(ctx)
	}
	if item := store.Get(k); item != nil {
		return clone(item.Value()), nil
	}

	gen := c.generation(k)
	flightKey := fmt.Sprintf("%s|%s|%s|%d", kind, k.docType, k.customer, gen)
	v, err, _ := c.flight.Do(flightKey, func() (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gens[k] == gen {
			store.Set(k, clone(items), ttlcache.DefaultTTL)
		}
		c.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]T)), nil
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
