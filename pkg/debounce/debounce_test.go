package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/pkg/debounce"
)

func TestDebouncer_SoloEntregaElUltimoValor(t *testing.T) {
	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 1)

	d := debounce.New(30*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		done <- struct{}{}
	})

	for _, v := range []string{"r", "re", "rel", "relo", "reloj"} {
		d.Trigger(v)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el debouncer nunca entregó el valor")
	}
	// margen para detectar entregas extra
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "reloj", got[0])
}

func TestDebouncer_StopCancelaPendiente(t *testing.T) {
	called := make(chan string, 1)
	d := debounce.New(20*time.Millisecond, func(v string) { called <- v })

	d.Trigger("x")
	d.Stop()
	d.Trigger("y")

	select {
	case v := <-called:
		t.Fatalf("no debía entregarse nada, llegó %q", v)
	case <-time.After(80 * time.Millisecond):
	}
}
