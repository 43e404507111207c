package reconcile_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/optimistic"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/reconcile"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

type fakeSource struct {
	mu   sync.Mutex
	subs []func(ports.OrderStatusEvent)
}

func (f *fakeSource) Subscribe(fn func(ports.OrderStatusEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	idx := len(f.subs) - 1
	return func() {
		f.mu.Lock()
		f.subs[idx] = nil
		f.mu.Unlock()
	}
}

func (f *fakeSource) emit(ev ports.OrderStatusEvent) {
	f.mu.Lock()
	subs := append([]func(ports.OrderStatusEvent){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn(ev)
		}
	}
}

func orders() *state.List[entity.Order] {
	l := state.NewList[entity.Order]()
	l.Replace([]entity.Order{{
		ID:       "o1",
		Status:   entity.OrderPending,
		Customer: entity.Customer{Name: "Ana"},
		Totals:   entity.Totals{ItemsCount: 3, Subtotal: decimal.NewFromInt(25), Total: decimal.NewFromInt(25)},
	}})
	return l
}

func TestListener_SoloCambiaElEstado(t *testing.T) {
	list := orders()
	before, _ := list.Find("o1")
	src := &fakeSource{}
	lst := reconcile.NewListener(list, nil, nil)
	lst.Start(src)

	src.emit(ports.OrderStatusEvent{
		OrderID: "o1",
		Status:  entity.OrderShipped,
		Order:   &entity.Order{ID: "o1", Customer: entity.Customer{Name: "Otro"}},
	})

	after, ok := list.Find("o1")
	require.True(t, ok)
	assert.Equal(t, entity.OrderShipped, after.Status)
	after.Status = before.Status
	assert.Equal(t, before, after, "el resto de campos no cambia")
}

func TestListener_OrdenDesconocidaNoCambiaNada(t *testing.T) {
	list := orders()
	before := list.Items()
	lst := reconcile.NewListener(list, nil, nil)

	assert.False(t, lst.Apply(ports.OrderStatusEvent{OrderID: "o99", Status: entity.OrderShipped}))
	assert.Equal(t, before, list.Items())
}

func TestListener_EstadoInvalido(t *testing.T) {
	list := orders()
	lst := reconcile.NewListener(list, nil, nil)
	assert.False(t, lst.Apply(ports.OrderStatusEvent{OrderID: "o1", Status: "perdida"}))
	o, _ := list.Find("o1")
	assert.Equal(t, entity.OrderPending, o.Status)
}

func TestListener_StartUnaVezYStop(t *testing.T) {
	list := orders()
	src := &fakeSource{}
	lst := reconcile.NewListener(list, nil, nil)
	lst.Start(src)
	lst.Start(src)
	assert.Len(t, src.subs, 1)

	lst.Stop()
	src.emit(ports.OrderStatusEvent{OrderID: "o1", Status: entity.OrderReady})
	o, _ := list.Find("o1")
	assert.Equal(t, entity.OrderPending, o.Status)
}

func TestListener_PaginaCerrada(t *testing.T) {
	list := orders()
	var life state.Lifecycle
	life.Close()
	lst := reconcile.NewListener(list, &life, nil)
	assert.False(t, lst.Apply(ports.OrderStatusEvent{OrderID: "o1", Status: entity.OrderReady}))
}

func TestListener_TrackSuperaCambiosEnCurso(t *testing.T) {
	list := orders()
	c := optimistic.NewController("orders", nil, nil)
	lst := reconcile.NewListener(list, nil, nil)
	lst.Track(c)

	token := c.Begin("o1", "status", entity.OrderPending)
	require.True(t, lst.Apply(ports.OrderStatusEvent{OrderID: "o1", Status: entity.OrderShipped}))

	latest, base := c.Settle("o1", "status", token, false, entity.OrderReady)
	assert.False(t, latest, "la respuesta en curso queda superada")
	assert.Equal(t, entity.OrderShipped, base)
}
