package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/mutation"
	"github.com/jhoicas/subastas-admin/internal/application/optimistic"
	"github.com/jhoicas/subastas-admin/internal/application/query"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

// Deps dependencias compartidas por todas las páginas. Se construyen una vez en el arranque.
type Deps struct {
	Caches  *cache.Service
	Notices *state.Notices
	Log     *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Caches == nil {
		d.Caches = cache.NewService(d.Log, nil)
	}
	if d.Notices == nil {
		d.Notices = state.NewNotices(0)
	}
	return d
}

// filter parámetros de listado que saben convertirse en query string.
type filter interface {
	Values() url.Values
}

// page estado común de una página de administración sobre una colección:
// consulta con caché, mutaciones y cambios optimistas sobre la lista local.
type page[T state.Item[T]] struct {
	name    string
	caches  *cache.Service
	repo    repository.Repository[T]
	q       *query.Query[T]
	mut     *mutation.Mutation[T]
	opt     *optimistic.Controller
	notices *state.Notices
	log     *logger.Logger

	// serializa cambio de parámetros + carga + lectura del estado
	loadMu sync.Mutex
}

func newPage[T state.Item[T]](name string, ttl time.Duration, repo repository.Repository[T], initial filter, d Deps) *page[T] {
	d = d.withDefaults()
	store := d.Caches.Register(name, ttl)
	fetch := func(ctx context.Context, params any) ([]T, error) {
		var v url.Values
		if f, ok := params.(filter); ok {
			v = f.Values()
		}
		return repo.List(ctx, v)
	}
	mut := mutation.New[T](name, mutation.Ops[T]{
		Create: repo.Create,
		Update: repo.Update,
		Delete: repo.Delete,
	}, d.Log)
	return &page[T]{
		name:    name,
		caches:  d.Caches,
		repo:    repo,
		q:       query.New[T](store, fetch, initial, d.Log),
		mut:     mut,
		opt:     optimistic.NewController(name, d.Notices, d.Log),
		notices: d.Notices,
		log:     d.Log.Component("page." + name),
	}
}

// load aplica los filtros y devuelve el estado resultante. Sin force, una
// entrada fresca en caché evita la llamada al backend.
func (p *page[T]) load(ctx context.Context, f filter, force bool) query.State[T] {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	p.q.SetParams(f)
	switch {
	case force:
		p.q.Refetch(ctx, true)
	case !p.q.Activate(ctx):
		p.q.Refetch(ctx, false)
	}
	return p.q.State()
}

// find busca en la lista local.
func (p *page[T]) find(id string) (T, error) {
	v, ok := p.q.List().Find(id)
	if !ok {
		return v, fmt.Errorf("%s %s: %w", p.name, id, domain.ErrNotFound)
	}
	return v, nil
}

// lookup busca en la lista local y, si la entidad no está cargada (otro filtro,
// otra página, arranque en frío), la pide al backend y la incorpora a la lista.
// La siguiente carga sustituye la lista completa.
func (p *page[T]) lookup(ctx context.Context, id string) (T, error) {
	if v, err := p.find(id); err == nil {
		return v, nil
	}
	remote, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return *new(T), fmt.Errorf("%s %s: %w", p.name, id, err)
	}
	p.q.List().Add(*remote)
	return p.find(id)
}

// create crea en el backend e invalida la colección.
func (p *page[T]) create(ctx context.Context, payload any) (*T, error) {
	res := p.mut.Create(ctx, payload)
	if res == nil {
		return nil, p.failure("crear", "", "")
	}
	p.caches.Invalidate(p.name)
	return res, nil
}

// update actualiza en el backend, refleja el resultado en la lista local e invalida.
func (p *page[T]) update(ctx context.Context, id string, payload any) (*T, error) {
	res := p.mut.Update(ctx, id, payload)
	if res == nil {
		return nil, p.failure("actualizar", id, "")
	}
	updated := *res
	if updated.Key() == "" {
		// el backend no devolvió la entidad; se conserva la local
		if local, err := p.find(id); err == nil {
			updated = local
		}
	} else {
		p.q.List().Update(id, func(t *T) { *t = updated.Clone() })
	}
	p.caches.Invalidate(p.name)
	return &updated, nil
}

// remove elimina en el backend y en la lista local.
func (p *page[T]) remove(ctx context.Context, id string) error {
	if !p.mut.Delete(ctx, id) {
		return p.failure("eliminar", id, "")
	}
	p.q.List().Remove(id)
	p.caches.Invalidate(p.name)
	return nil
}

func (p *page[T]) failure(op, id, field string) error {
	err := p.mut.LastErr()
	if err == nil {
		err = errors.New(p.mut.Error())
	}
	target := p.name
	if id != "" {
		target += " " + id
	}
	if field != "" {
		target += " (" + field + ")"
	}
	return fmt.Errorf("usecase: %s %s: %w", op, target, err)
}

// close desmonta la página; las respuestas pendientes se descartan.
func (p *page[T]) close() { p.q.Close() }

// field accesores de un campo para cambios optimistas.
type field[T any, V any] struct {
	name string
	get  func(T) V
	set  func(*T, V)
}

// change aplica un cambio optimista de un campo y devuelve la entidad tal como
// quedó en la lista local. Si no estaba cargada se pide antes al backend. Si la llamada falla y era la última, se revierte y
// se devuelve el error.
func change[T state.Item[T], V any](ctx context.Context, p *page[T], id string, f field[T, V], next V, payload any) (T, error) {
	if _, err := p.lookup(ctx, id); err != nil {
		return *new(T), err
	}
	out := optimistic.Apply(ctx, p.opt, p.q.List(), p.q.Lifecycle(), optimistic.Change[T, V]{
		ID:    id,
		Field: f.name,
		Get:   f.get,
		Set:   f.set,
		Next:  next,
		Call: func(ctx context.Context) bool {
			return p.mut.Update(ctx, id, payload) != nil
		},
	})
	current, _ := p.q.List().Find(id)
	switch out {
	case optimistic.RolledBack:
		return current, p.failure("actualizar", id, f.name)
	case optimistic.NotFound:
		return current, fmt.Errorf("%s %s: %w", p.name, id, domain.ErrNotFound)
	case optimistic.Applied:
		p.caches.Invalidate(p.name)
	}
	return current, nil
}
