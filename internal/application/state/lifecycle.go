package state

import "sync/atomic"

// Lifecycle bandera de vida de una página. Las continuaciones asíncronas la
// consultan y descartan su resultado tras Close.
type Lifecycle struct {
	closed atomic.Bool
}

// Alive indica si la página sigue montada.
func (l *Lifecycle) Alive() bool { return !l.closed.Load() }

// Close marca la página como desmontada. Idempotente.
func (l *Lifecycle) Close() { l.closed.Store(true) }
