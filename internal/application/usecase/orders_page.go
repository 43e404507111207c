package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/query"
	"github.com/jhoicas/subastas-admin/internal/application/reconcile"
	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
	"github.com/jhoicas/subastas-admin/pkg/debounce"
)

// OrdersPage seguimiento de pedidos: listado, cambio de estado optimista,
// reconciliación con el canal push y documentos imprimibles.
type OrdersPage struct {
	*page[entity.Order]
	docs     ports.OrderDocumentRenderer
	listener *reconcile.Listener
	search   *debounce.Debouncer[string]

	mu       sync.Mutex
	filter   dto.OrderFilter
	onSearch func(query.State[entity.Order])
	unsub    func()
}

// NewOrdersPage construye la página. docs puede ser nil si no se generan PDF.
func NewOrdersPage(repo repository.OrderRepository, ttl, quiet time.Duration, docs ports.OrderDocumentRenderer, d Deps) *OrdersPage {
	d = d.withDefaults()
	p := &OrdersPage{
		page: newPage[entity.Order](cache.Orders, ttl, repo, dto.OrderFilter{}, d),
		docs: docs,
	}
	p.listener = reconcile.NewListener(p.q.List(), p.q.Lifecycle(), d.Log)
	p.listener.Track(p.opt)
	p.search = debounce.New(quiet, p.runSearch)
	return p
}

// List devuelve los pedidos para el filtro; force ignora la caché.
func (p *OrdersPage) List(ctx context.Context, f dto.OrderFilter, force bool) query.State[entity.Order] {
	f.PageRequest.Normalize()
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
	return p.load(ctx, f, force)
}

// Search cambia el texto buscado con debounce. onDone es opcional.
func (p *OrdersPage) Search(term string, onDone func(query.State[entity.Order])) {
	p.mu.Lock()
	p.onSearch = onDone
	p.mu.Unlock()
	p.search.Trigger(term)
}

func (p *OrdersPage) runSearch(term string) {
	p.mu.Lock()
	f := p.filter
	f.Search = term
	f.Page = 0
	p.filter = f
	done := p.onSearch
	p.mu.Unlock()

	st := p.load(context.Background(), f, false)
	if done != nil {
		done(st)
	}
}

// Get devuelve el pedido de la lista local.
func (p *OrdersPage) Get(id string) (entity.Order, error) { return p.find(id) }

var orderStatus = field[entity.Order, entity.OrderStatus]{
	name: "status",
	get:  func(o entity.Order) entity.OrderStatus { return o.Status },
	set:  func(o *entity.Order, s entity.OrderStatus) { o.Status = s },
}

// ChangeStatus cambia el estado de forma optimista. Las transiciones fuera de
// la tabla se rechazan antes de llamar al backend.
func (p *OrdersPage) ChangeStatus(ctx context.Context, id string, in dto.ChangeStatusRequest) (entity.Order, error) {
	if err := validation.Struct(in); err != nil {
		return entity.Order{}, err
	}
	cur, err := p.lookup(ctx, id)
	if err != nil {
		return cur, err
	}
	next := entity.OrderStatus(in.Status)
	if err := entity.CheckTransition(cur.Status, next); err != nil {
		return cur, err
	}
	return change(ctx, p.page, id, orderStatus, next, dto.StatusPayload{Status: in.Status})
}

// Delete elimina un pedido.
func (p *OrdersPage) Delete(ctx context.Context, id string) error { return p.remove(ctx, id) }

// StartPush conecta la página al canal de eventos. Los eventos válidos
// sobrescriben el estado local e invalidan la caché de pedidos.
func (p *OrdersPage) StartPush(src ports.OrderEventSource) {
	if src == nil {
		return
	}
	p.listener.Start(src)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsub != nil {
		return
	}
	p.unsub = src.Subscribe(func(ev ports.OrderStatusEvent) {
		if ev.OrderID != "" && ev.Status.Valid() {
			p.caches.Invalidate(p.name)
		}
	})
}

// StopPush cancela las suscripciones al canal.
func (p *OrdersPage) StopPush() {
	p.listener.Stop()
	p.mu.Lock()
	unsub := p.unsub
	p.unsub = nil
	p.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Label genera la etiqueta de envío del pedido.
func (p *OrdersPage) Label(ctx context.Context, id string) ([]byte, error) {
	o, err := p.document(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.docs.ShippingLabel(ctx, o)
}

// Summary genera el resumen del pedido.
func (p *OrdersPage) Summary(ctx context.Context, id string) ([]byte, error) {
	o, err := p.document(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.docs.OrderSummary(ctx, o)
}

// document usa la copia local y, si el pedido no está cargado, lo pide al backend.
func (p *OrdersPage) document(ctx context.Context, id string) (entity.Order, error) {
	if p.docs == nil {
		return entity.Order{}, fmt.Errorf("usecase: documentos de pedido: %w", domain.ErrServiceUnavailable)
	}
	o, err := p.find(id)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return o, err
	}
	remote, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Order{}, fmt.Errorf("usecase: obtener pedido %s: %w", id, err)
	}
	return *remote, nil
}

// Close detiene push y buscador y desmonta la página.
func (p *OrdersPage) Close() {
	p.StopPush()
	p.search.Stop()
	p.close()
}
