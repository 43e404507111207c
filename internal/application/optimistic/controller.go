// Package optimistic aplica cambios locales antes de que el backend los
// confirme y los revierte si la escritura falla.
//
// Cada par entidad-campo lleva un token creciente. Al terminar una llamada solo
// se actúa si su token sigue siendo el último emitido; las respuestas viejas se
// descartan. La reversión vuelve al último valor confirmado (la base), no al
// valor que vio la llamada al empezar.
package optimistic

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

// Outcome resultado de un cambio optimista.
type Outcome int

const (
	// Applied la llamada fue bien y el valor local queda como estaba.
	Applied Outcome = iota
	// RolledBack la llamada falló y el campo volvió a su base.
	RolledBack
	// Superseded otra llamada posterior sobre el mismo campo manda; esta se ignora.
	Superseded
	// Dropped la página se cerró antes de terminar.
	Dropped
	// NotFound la entidad no estaba en la lista local.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case RolledBack:
		return "rolled_back"
	case Superseded:
		return "superseded"
	case Dropped:
		return "dropped"
	case NotFound:
		return "not_found"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type slot struct {
	token    uint64
	inFlight int
	base     any
}

// Controller lleva los tokens y las bases por entidad-campo de una colección.
type Controller struct {
	collection string
	log        *logger.Logger
	notices    *state.Notices

	mu    sync.Mutex
	slots map[string]*slot
}

// NewController construye el controlador. notices puede ser nil.
func NewController(collection string, notices *state.Notices, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		collection: collection,
		log:        log.Component("optimistic." + collection),
		notices:    notices,
		slots:      make(map[string]*slot),
	}
}

// Begin emite un token para id/field. prev es el valor visible antes del cambio;
// solo se toma como base si no había otra llamada en curso sobre el campo.
func (c *Controller) Begin(id, field string, prev any) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := slotKey(id, field)
	s, ok := c.slots[k]
	if !ok {
		s = &slot{}
		c.slots[k] = s
	}
	if s.inFlight == 0 {
		s.base = prev
	}
	s.inFlight++
	s.token++
	return s.token
}

// Latest último token emitido para id/field (0 si nunca hubo ninguno).
func (c *Controller) Latest(id, field string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[slotKey(id, field)]; ok {
		return s.token
	}
	return 0
}

// Settle registra el fin de la llamada token. Un éxito convierte value en la
// nueva base. Devuelve si la llamada era la última y, cuando lo era y falló, el
// valor al que hay que revertir. En ese caso el slot sigue vivo hasta Restore.
func (c *Controller) Settle(id, field string, token uint64, ok bool, value any) (latest bool, rollback any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := slotKey(id, field)
	s, exists := c.slots[k]
	if !exists {
		return false, nil
	}
	s.inFlight--
	if ok {
		s.base = value
	}
	latest = token == s.token
	rollback = s.base
	if s.inFlight <= 0 && (ok || !latest) {
		delete(c.slots, k)
	}
	return latest, rollback
}

// Restore ejecuta revert solo si token sigue siendo el último emitido para
// id/field, con el controlador bloqueado. Devuelve si se revirtió.
func (c *Controller) Restore(id, field string, token uint64, revert func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := slotKey(id, field)
	s, exists := c.slots[k]
	if !exists {
		return false
	}
	restored := s.token == token
	if restored && revert != nil {
		revert()
	}
	if s.inFlight <= 0 {
		delete(c.slots, k)
	}
	return restored
}

// Reconcile registra un valor confirmado por el servidor fuera de las llamadas
// propias (canal push). Las respuestas en curso sobre id/field quedan superadas
// y value pasa a ser la base. Sin llamadas en curso no hace nada.
func (c *Controller) Reconcile(id, field string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[slotKey(id, field)]
	if !ok {
		return
	}
	s.token++
	s.base = value
}

func slotKey(id, field string) string { return id + "\x00" + field }

// Change describe un cambio de un campo de tipo V sobre una entidad T.
type Change[T state.Item[T], V any] struct {
	ID    string
	Field string
	Get   func(T) V
	Set   func(*T, V)
	Next  V
	// Call hace la escritura remota y devuelve si tuvo éxito.
	Call func(ctx context.Context) bool
}

// Apply ejecuta el patrón completo: guarda el valor previo, aplica Next en la
// lista local antes de llamar al backend y, si la llamada falla y sigue siendo
// la última, revierte el campo a su base y publica un aviso.
func Apply[T state.Item[T], V any](ctx context.Context, c *Controller, list *state.List[T], life *state.Lifecycle, ch Change[T, V]) Outcome {
	item, ok := list.Find(ch.ID)
	if !ok {
		return NotFound
	}
	token := c.Begin(ch.ID, ch.Field, ch.Get(item))
	list.Update(ch.ID, func(t *T) { ch.Set(t, ch.Next) })

	success := ch.Call(ctx)
	latest, base := c.Settle(ch.ID, ch.Field, token, success, ch.Next)
	dropped := life != nil && !life.Alive()

	restored := false
	if latest && !success {
		prev, _ := base.(V)
		restored = c.Restore(ch.ID, ch.Field, token, func() {
			if !dropped {
				list.Update(ch.ID, func(t *T) { ch.Set(t, prev) })
			}
		})
	}

	if dropped {
		return Dropped
	}
	if !latest {
		c.log.Debug().Str("id", ch.ID).Str("field", ch.Field).Uint64("token", token).Msg("respuesta superada, se descarta")
		return Superseded
	}
	if success {
		return Applied
	}
	if !restored {
		// el servidor confirmó otro valor mientras la llamada estaba en curso
		c.log.Debug().Str("id", ch.ID).Str("field", ch.Field).Msg("fallo ignorado: valor reconciliado")
		return Superseded
	}

	metrics.OptimisticRollbacks.WithLabelValues(c.collection).Inc()
	c.log.Warn().Str("id", ch.ID).Str("field", ch.Field).Msg("cambio optimista revertido")
	if c.notices != nil {
		c.notices.Toast("error", fmt.Sprintf("No se pudo actualizar %s de %s", ch.Field, ch.ID))
	}
	return RolledBack
}
