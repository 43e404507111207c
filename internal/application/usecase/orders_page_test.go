package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

type fakeDocs struct{ rendered []string }

func (f *fakeDocs) ShippingLabel(_ context.Context, o entity.Order) ([]byte, error) {
	f.rendered = append(f.rendered, "label:"+o.ID)
	return []byte("%PDF-label"), nil
}

func (f *fakeDocs) OrderSummary(_ context.Context, o entity.Order) ([]byte, error) {
	f.rendered = append(f.rendered, "summary:"+o.ID)
	return []byte("%PDF-summary"), nil
}

func orderRepo() *fakeRepo[entity.Order] {
	return &fakeRepo[entity.Order]{items: []entity.Order{
		{ID: "o1", Status: entity.OrderReady},
		{ID: "o2", Status: entity.OrderPending},
	}}
}

func newOrdersPage(t *testing.T, repo *fakeRepo[entity.Order], docs ports.OrderDocumentRenderer) (*usecase.OrdersPage, usecase.Deps) {
	t.Helper()
	deps, _ := newDeps()
	p := usecase.NewOrdersPage(repo, 30*time.Second, 10*time.Millisecond, docs, deps)
	t.Cleanup(p.Close)
	p.List(context.Background(), dto.OrderFilter{}, false)
	return p, deps
}

func status(t *testing.T, p *usecase.OrdersPage, id string) entity.OrderStatus {
	t.Helper()
	o, err := p.Get(id)
	require.NoError(t, err)
	return o.Status
}

func TestOrdersPage_PushReconcilia(t *testing.T) {
	repo := orderRepo()
	p, deps := newOrdersPage(t, repo, nil)
	events := &fakeEvents{}
	p.StartPush(events)
	p.StartPush(events)

	events.emit(ports.OrderStatusEvent{OrderID: "o1", Status: entity.OrderShipped})
	assert.Equal(t, entity.OrderShipped, status(t, p, "o1"))
	assert.Equal(t, entity.OrderPending, status(t, p, "o2"))

	events.emit(ports.OrderStatusEvent{OrderID: "o99", Status: entity.OrderDelivered})
	_, err := p.Get("o99")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "un evento de una orden no cargada no la crea")

	store, ok := deps.Caches.Store(cache.Orders)
	require.True(t, ok)
	assert.Zero(t, store.Len(), "los eventos válidos invalidan la caché de pedidos")

	p.StopPush()
	assert.Zero(t, events.count())
}

func TestOrdersPage_PushIgnoraEstadoInvalido(t *testing.T) {
	repo := orderRepo()
	p, deps := newOrdersPage(t, repo, nil)
	events := &fakeEvents{}
	p.StartPush(events)

	events.emit(ports.OrderStatusEvent{OrderID: "o1", Status: "lost"})
	assert.Equal(t, entity.OrderReady, status(t, p, "o1"))

	store, _ := deps.Caches.Store(cache.Orders)
	assert.Equal(t, 1, store.Len())
}

func TestOrdersPage_ChangeStatus(t *testing.T) {
	repo := orderRepo()
	p, _ := newOrdersPage(t, repo, nil)

	got, err := p.ChangeStatus(context.Background(), "o1", dto.ChangeStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, got.Status)
	assert.Equal(t, dto.StatusPayload{Status: "shipped"}, repo.lastPayload())
}

func TestOrdersPage_ChangeStatusTransicionInvalida(t *testing.T) {
	repo := orderRepo()
	p, _ := newOrdersPage(t, repo, nil)

	_, err := p.ChangeStatus(context.Background(), "o2", dto.ChangeStatusRequest{Status: "delivered"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Zero(t, repo.updates, "se rechaza antes de llamar al backend")
	assert.Equal(t, entity.OrderPending, status(t, p, "o2"))
}

func TestOrdersPage_ChangeStatusRevierte(t *testing.T) {
	repo := orderRepo()
	p, deps := newOrdersPage(t, repo, nil)
	repo.failNext = errors.New("Error 503: Service Unavailable")

	_, err := p.ChangeStatus(context.Background(), "o2", dto.ChangeStatusRequest{Status: "ready"})
	require.Error(t, err)
	assert.Equal(t, entity.OrderPending, status(t, p, "o2"))
	assert.Len(t, deps.Notices.List(), 1)
}

func TestOrdersPage_Documentos(t *testing.T) {
	repo := orderRepo()
	docs := &fakeDocs{}
	p, _ := newOrdersPage(t, repo, docs)
	ctx := context.Background()

	pdf, err := p.Label(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-label"), pdf)

	_, err = p.Summary(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, []string{"label:o1", "summary:o2"}, docs.rendered)

	_, err = p.Label(ctx, "o404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOrdersPage_DocumentoPideAlBackendSiNoEstaCargado(t *testing.T) {
	repo := orderRepo()
	docs := &fakeDocs{}
	deps, _ := newDeps()
	p := usecase.NewOrdersPage(repo, 30*time.Second, 10*time.Millisecond, docs, deps)
	defer p.Close()

	_, err := p.Label(context.Background(), "o2")
	require.NoError(t, err)
	assert.Equal(t, []string{"label:o2"}, docs.rendered)
	assert.Zero(t, repo.listCalls())
}

func TestOrdersPage_SinRenderer(t *testing.T) {
	p, _ := newOrdersPage(t, orderRepo(), nil)
	_, err := p.Label(context.Background(), "o1")
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestOrdersPage_PushGanaAUnCambioQueFallaDespues(t *testing.T) {
	repo := orderRepo()
	repo.entered = make(chan struct{})
	repo.release = make(chan struct{})
	repo.failNext = errors.New("Error 503: Service Unavailable")
	p, deps := newOrdersPage(t, repo, nil)
	events := &fakeEvents{}
	p.StartPush(events)

	done := make(chan error, 1)
	go func() {
		_, err := p.ChangeStatus(context.Background(), "o2", dto.ChangeStatusRequest{Status: "ready"})
		done <- err
	}()
	<-repo.entered
	assert.Equal(t, entity.OrderReady, status(t, p, "o2"), "el valor optimista ya es visible")

	events.emit(ports.OrderStatusEvent{OrderID: "o2", Status: entity.OrderShipped})
	assert.Equal(t, entity.OrderShipped, status(t, p, "o2"))

	close(repo.release)
	require.NoError(t, <-done)
	assert.Equal(t, entity.OrderShipped, status(t, p, "o2"), "el fallo no pisa el estado confirmado por el servidor")
	assert.Empty(t, deps.Notices.List())
}

func TestOrdersPage_ChangeStatusSinListadoPrevio(t *testing.T) {
	repo := orderRepo()
	deps, _ := newDeps()
	p := usecase.NewOrdersPage(repo, 30*time.Second, 10*time.Millisecond, nil, deps)
	defer p.Close()

	got, err := p.ChangeStatus(context.Background(), "o2", dto.ChangeStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, got.Status)
	assert.Equal(t, 1, repo.updates)

	_, err = p.ChangeStatus(context.Background(), "o404", dto.ChangeStatusRequest{Status: "ready"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
