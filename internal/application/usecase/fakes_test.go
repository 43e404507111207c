package usecase_test

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	"github.com/jhoicas/subastas-admin/internal/domain"
)

type keyed interface{ Key() string }

// fakeRepo backend en memoria que cuenta las llamadas.
type fakeRepo[T keyed] struct {
	mu       sync.Mutex
	items    []T
	lists    int
	params   []url.Values
	payloads []any
	updates  int
	failNext error

	onCreate func(payload any) T

	// si entered no es nil, Update avisa y espera a release antes de responder
	entered chan struct{}
	release chan struct{}
}

func (r *fakeRepo[T]) List(_ context.Context, params url.Values) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	r.params = append(r.params, params)
	return append([]T(nil), r.items...), nil
}

func (r *fakeRepo[T]) GetByID(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Key() == id {
			return &it, nil
		}
	}
	return nil, fmt.Errorf("fake: %s: %w", id, domain.ErrNotFound)
}

func (r *fakeRepo[T]) Create(_ context.Context, payload any) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	var created T
	if r.onCreate != nil {
		created = r.onCreate(payload)
	}
	r.items = append(r.items, created)
	return &created, nil
}

func (r *fakeRepo[T]) Update(_ context.Context, _ string, payload any) (*T, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.payloads = append(r.payloads, payload)
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	var empty T
	return &empty, nil
}

func (r *fakeRepo[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return err
	}
	for i, it := range r.items {
		if it.Key() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fake: %s: %w", id, domain.ErrNotFound)
}

func (r *fakeRepo[T]) takeErr() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeRepo[T]) listCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists
}

func (r *fakeRepo[T]) lastPayload() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return nil
	}
	return r.payloads[len(r.payloads)-1]
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newDeps() (usecase.Deps, *clock) {
	clk := &clock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	return usecase.Deps{
		Caches:  cache.NewService(nil, clk.now),
		Notices: state.NewNotices(0),
	}, clk
}

// fakeEvents fuente de eventos push controlada por el test.
type fakeEvents struct {
	mu   sync.Mutex
	subs map[int]func(ports.OrderStatusEvent)
	next int
}

func (f *fakeEvents) Subscribe(fn func(ports.OrderStatusEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = map[int]func(ports.OrderStatusEvent){}
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *fakeEvents) emit(ev ports.OrderStatusEvent) {
	f.mu.Lock()
	subs := make([]func(ports.OrderStatusEvent), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
