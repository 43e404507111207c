package optimistic_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/optimistic"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

func activoChange(next bool, call func(context.Context) bool) optimistic.Change[entity.Product, bool] {
	return optimistic.Change[entity.Product, bool]{
		ID:    "p1",
		Field: "activo",
		Get:   func(p entity.Product) bool { return p.Activo },
		Set:   func(p *entity.Product, v bool) { p.Activo = v },
		Next:  next,
		Call:  call,
	}
}

func newList() *state.List[entity.Product] {
	l := state.NewList[entity.Product]()
	l.Replace([]entity.Product{{ID: "p1", Title: "Reloj", Activo: true}})
	return l
}

func activo(t *testing.T, l *state.List[entity.Product]) bool {
	t.Helper()
	p, ok := l.Find("p1")
	require.True(t, ok)
	return p.Activo
}

func TestApply_RollbackAlFallar(t *testing.T) {
	list := newList()
	notices := state.NewNotices(0)
	c := optimistic.NewController("products", notices, nil)

	var seen bool
	out := optimistic.Apply(context.Background(), c, list, nil, activoChange(false, func(context.Context) bool {
		seen = activo(t, list)
		return false
	}))

	assert.False(t, seen, "el valor optimista se ve antes de que responda el backend")
	assert.Equal(t, optimistic.RolledBack, out)
	assert.True(t, activo(t, list))
	require.Len(t, notices.List(), 1)
	assert.Equal(t, state.KindToast, notices.List()[0].Kind)
}

func TestApply_ExitoNoSobrescribe(t *testing.T) {
	list := newList()
	c := optimistic.NewController("products", nil, nil)

	out := optimistic.Apply(context.Background(), c, list, nil, activoChange(false, func(context.Context) bool { return true }))
	assert.Equal(t, optimistic.Applied, out)
	assert.False(t, activo(t, list))
	p, _ := list.Find("p1")
	assert.Equal(t, "Reloj", p.Title)
}

func TestApply_EntidadAusente(t *testing.T) {
	list := state.NewList[entity.Product]()
	c := optimistic.NewController("products", nil, nil)
	called := false
	out := optimistic.Apply(context.Background(), c, list, nil, activoChange(false, func(context.Context) bool {
		called = true
		return true
	}))
	assert.Equal(t, optimistic.NotFound, out)
	assert.False(t, called)
}

func TestApply_PaginaCerrada(t *testing.T) {
	list := newList()
	c := optimistic.NewController("products", nil, nil)
	var life state.Lifecycle
	out := optimistic.Apply(context.Background(), c, list, &life, activoChange(false, func(context.Context) bool {
		life.Close()
		return false
	}))
	assert.Equal(t, optimistic.Dropped, out)
	assert.False(t, activo(t, list), "tras el cierre no se toca el estado")
}

// Dos toggles rápidos: el primero responde tarde con error y no debe pisar al segundo.
func TestApply_RespuestaViejaSeDescarta(t *testing.T) {
	list := newList()
	c := optimistic.NewController("products", nil, nil)

	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	var wg sync.WaitGroup
	var outA optimistic.Outcome

	wg.Add(1)
	go func() {
		defer wg.Done()
		outA = optimistic.Apply(context.Background(), c, list, nil, activoChange(false, func(context.Context) bool {
			close(startedA)
			<-releaseA
			return false
		}))
	}()
	<-startedA

	outB := optimistic.Apply(context.Background(), c, list, nil, activoChange(true, func(context.Context) bool { return true }))
	assert.Equal(t, optimistic.Applied, outB)

	close(releaseA)
	wg.Wait()

	assert.Equal(t, optimistic.Superseded, outA)
	assert.True(t, activo(t, list))
}

func TestController_RollbackALaBaseConfirmada(t *testing.T) {
	c := optimistic.NewController("products", nil, nil)

	t1 := c.Begin("p1", "activo", true)
	t2 := c.Begin("p1", "activo", false)
	assert.Equal(t, t2, c.Latest("p1", "activo"))

	latest, _ := c.Settle("p1", "activo", t1, true, false)
	assert.False(t, latest)

	latest, base := c.Settle("p1", "activo", t2, false, true)
	assert.True(t, latest)
	assert.Equal(t, false, base, "la primera llamada confirmó false en el servidor")
}

func TestApply_ValorReconciliadoNoSeRevierte(t *testing.T) {
	list := newList()
	notices := state.NewNotices(0)
	c := optimistic.NewController("products", notices, nil)

	out := optimistic.Apply(context.Background(), c, list, nil, activoChange(false, func(context.Context) bool {
		// el servidor confirma otro valor antes de que la llamada falle
		c.Reconcile("p1", "activo", false)
		list.Update("p1", func(p *entity.Product) { p.Activo = false })
		return false
	}))

	assert.Equal(t, optimistic.Superseded, out)
	assert.False(t, activo(t, list))
	assert.Empty(t, notices.List())
	assert.Zero(t, c.Latest("p1", "activo"), "el slot se libera")
}

func TestController_ReconcileSinLlamadasNoHaceNada(t *testing.T) {
	c := optimistic.NewController("products", nil, nil)
	c.Reconcile("p1", "activo", true)
	assert.Zero(t, c.Latest("p1", "activo"))
}
