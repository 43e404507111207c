// Package query implementa la consulta de listas con caché: la primera
// activación consulta la caché y, si no hay entrada fresca, va al backend.
package query

import (
	"context"
	"sync"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

// Fetcher obtiene la lista ya normalizada para unos parámetros.
type Fetcher[T any] func(ctx context.Context, params any) ([]T, error)

// State lo que observa quien usa la consulta.
type State[T any] struct {
	Data      []T
	Loading   bool
	Err       string // mensaje legible; vacío si la última carga fue bien
	FromCache bool
}

// Query consulta de una colección con sus parámetros actuales. Los datos viven
// en una lista local (List) que las páginas pueden modificar de forma optimista
// sin tocar la caché.
type Query[T state.Item[T]] struct {
	store   *cache.Store
	fetch   Fetcher[T]
	log     *logger.Logger
	list    *state.List[T]
	life    state.Lifecycle
	mu      sync.Mutex
	params  any
	enabled bool
	fetched bool
	loading int
	err     string
	cached  bool
}

// New construye la consulta sobre el store de su colección.
func New[T state.Item[T]](store *cache.Store, fetch Fetcher[T], params any, log *logger.Logger) *Query[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Query[T]{
		store:   store,
		fetch:   fetch,
		log:     log.Component("query." + store.Name()),
		list:    state.NewList[T](),
		params:  params,
		enabled: true,
	}
}

// List lista local de la consulta.
func (q *Query[T]) List() *state.List[T] { return q.list }

// Lifecycle bandera de vida de la consulta.
func (q *Query[T]) Lifecycle() *state.Lifecycle { return &q.life }

// Params parámetros actuales.
func (q *Query[T]) Params() any {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.params
}

// SetEnabled habilita o deshabilita la carga automática.
func (q *Query[T]) SetEnabled(enabled bool) {
	q.mu.Lock()
	q.enabled = enabled
	q.mu.Unlock()
}

// SetParams cambia los parámetros. Si cambian, la próxima Activate vuelve a cargar.
func (q *Query[T]) SetParams(params any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if cache.Key(q.store.Name(), params) == cache.Key(q.store.Name(), q.params) {
		return
	}
	q.params = params
	q.fetched = false
}

// Activate carga automáticamente como mucho una vez por identidad de parámetros.
// Devuelve false si no hizo nada.
func (q *Query[T]) Activate(ctx context.Context) bool {
	q.mu.Lock()
	if !q.enabled || q.fetched {
		q.mu.Unlock()
		return false
	}
	q.fetched = true
	q.mu.Unlock()
	q.load(ctx, false)
	return true
}

// Refetch vuelve a cargar; con force ignora la caché aunque siga fresca.
// No hay reintentos automáticos: reintentar es volver a llamar Refetch.
func (q *Query[T]) Refetch(ctx context.Context, force bool) {
	q.mu.Lock()
	q.fetched = true
	q.mu.Unlock()
	q.load(ctx, force)
}

// State devuelve una copia del estado actual.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return State[T]{
		Data:      q.list.Items(),
		Loading:   q.loading > 0,
		Err:       q.err,
		FromCache: q.cached,
	}
}

// Close desmonta la consulta; las cargas en curso se descartan al terminar.
func (q *Query[T]) Close() { q.life.Close() }

func (q *Query[T]) load(ctx context.Context, force bool) {
	q.mu.Lock()
	params := q.params
	q.mu.Unlock()
	key := cache.Key(q.store.Name(), params)

	if !force {
		if v, ok := q.store.Lookup(key); ok {
			if items, ok := v.([]T); ok {
				q.log.Debug().Str("key", key).Msg("cache hit")
				q.list.Replace(items)
				q.mu.Lock()
				q.err = ""
				q.cached = true
				q.mu.Unlock()
				return
			}
		}
	}

	q.mu.Lock()
	q.loading++
	q.mu.Unlock()

	items, err := q.fetch(ctx, params)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading--
	if !q.life.Alive() {
		q.log.Debug().Str("key", key).Msg("consulta cerrada, resultado descartado")
		return
	}
	if err != nil {
		q.log.Error().Err(err).Str("key", key).Msg("error cargando colección")
		q.err = err.Error()
		q.cached = false
		q.list.Replace(nil)
		return
	}
	q.store.Set(key, snapshot(items))
	q.list.Replace(items)
	q.err = ""
	q.cached = false
}

func snapshot[T state.Item[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
