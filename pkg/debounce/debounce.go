// Package debounce retrasa la propagación de un valor hasta que pasa un periodo
// de silencio. Cada Trigger reinicia el temporizador; solo el último valor llega
// al callback.
package debounce

import (
	"sync"
	"time"
)

// Debouncer entrega el último valor recibido una vez transcurrido el periodo de silencio.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	gen     uint64
	stopped bool
}

// New construye un Debouncer. fn se ejecuta en su propia goroutine.
func New[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, fn: fn}
}

// Trigger registra un nuevo valor y reinicia el temporizador.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = v
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// fire descarta disparos de temporizadores ya reemplazados (Stop no garantiza
// que el callback anterior no haya arrancado).
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.mu.Unlock()
	d.fn(v)
}

// Stop cancela cualquier entrega pendiente. Los Trigger posteriores se ignoran.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
