package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
)

// clock reloj manual para controlar el TTL.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestIsValid(t *testing.T) {
	now := time.Now()
	assert.True(t, cache.IsValid(cache.Entry{StoredAt: now.Add(-time.Minute)}, now, 2*time.Minute))
	assert.False(t, cache.IsValid(cache.Entry{StoredAt: now.Add(-2 * time.Minute)}, now, 2*time.Minute))
	assert.False(t, cache.IsValid(cache.Entry{}, now, time.Hour), "entrada sin marca nunca es válida")
}

func TestStore_TTL(t *testing.T) {
	clk := newClock()
	st := cache.NewStore(cache.Products, 2*time.Minute, clk.Now)

	st.Set("k", []string{"a"})
	v, ok := st.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	clk.Advance(119 * time.Second)
	_, ok = st.Lookup("k")
	assert.True(t, ok, "dentro del TTL")

	clk.Advance(time.Second)
	_, ok = st.Lookup("k")
	assert.False(t, ok, "vencida se ve como ausente")

	_, ok = st.Get("k")
	assert.True(t, ok, "Get devuelve la entrada aunque esté vencida")
}

func TestStore_UltimaEscrituraGana(t *testing.T) {
	st := cache.NewStore(cache.Orders, time.Minute, nil)
	st.Set("k", 1)
	st.Set("k", 2)
	v, ok := st.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, st.Len())
}

func TestKey_EstableYSinColisiones(t *testing.T) {
	type filter struct {
		Search   string `json:"search,omitempty"`
		Category string `json:"category,omitempty"`
		Page     int    `json:"page,omitempty"`
	}
	a := cache.Key(cache.Products, filter{Search: "reloj", Page: 1})
	b := cache.Key(cache.Products, filter{Search: "reloj", Page: 1})
	c := cache.Key(cache.Products, filter{Search: "reloj", Page: 2})
	d := cache.Key(cache.Categories, filter{Search: "reloj", Page: 1})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)

	m1 := cache.Key(cache.Products, map[string]any{"b": 1, "a": 2})
	m2 := cache.Key(cache.Products, map[string]any{"a": 2, "b": 1})
	assert.Equal(t, m1, m2, "los mapas se serializan ordenados")
}

func TestService_InvalidateIgnoraTTL(t *testing.T) {
	clk := newClock()
	svc := cache.NewService(nil, clk.Now)
	products := svc.Register(cache.Products, 2*time.Minute)
	categories := svc.Register(cache.Categories, 5*time.Minute)

	products.Set("k", "p")
	categories.Set("k", "c")

	svc.Invalidate(cache.Products)

	_, ok := products.Lookup("k")
	assert.False(t, ok)
	_, ok = categories.Lookup("k")
	assert.True(t, ok, "solo se invalida la colección indicada")

	svc.Invalidate("desconocida")
	svc.InvalidateAll()
	_, ok = categories.Lookup("k")
	assert.False(t, ok)
}

func TestService_RegisterDevuelveElMismoStore(t *testing.T) {
	svc := cache.NewService(nil, nil)
	a := svc.Register(cache.Users, time.Minute)
	b := svc.Register(cache.Users, time.Hour)
	assert.Same(t, a, b)
	assert.Equal(t, time.Minute, b.TTL())

	st, ok := svc.Store(cache.Users)
	require.True(t, ok)
	assert.Same(t, a, st)
	assert.Equal(t, []string{cache.Users}, svc.Names())
}
