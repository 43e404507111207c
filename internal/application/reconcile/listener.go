// Package reconcile aplica a la lista local de órdenes los cambios de estado
// que llegan por el canal push.
package reconcile

import (
	"sync"

	"github.com/jhoicas/subastas-admin/internal/application/optimistic"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

const (
	eventName   = "orderUpdated"
	statusField = "status"
)

// Listener sobrescribe solo el estado de la orden coincidente. Las órdenes que
// no están en la lista local se ignoran; no hay reproducción de eventos perdidos.
type Listener struct {
	list *state.List[entity.Order]
	life *state.Lifecycle
	log  *logger.Logger
	opt  *optimistic.Controller

	mu          sync.Mutex
	unsubscribe func()
}

// NewListener construye el listener sobre la lista local de una página.
func NewListener(list *state.List[entity.Order], life *state.Lifecycle, log *logger.Logger) *Listener {
	if log == nil {
		log = logger.Nop()
	}
	return &Listener{list: list, life: life, log: log.Component("reconcile")}
}

// Track hace que los eventos aplicados superen los cambios optimistas de
// estado en curso: una respuesta fallida posterior ya no revierte el valor.
// Debe llamarse antes de Start.
func (l *Listener) Track(c *optimistic.Controller) { l.opt = c }

// Start se suscribe una sola vez; llamadas posteriores no hacen nada.
func (l *Listener) Start(src ports.OrderEventSource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unsubscribe != nil || src == nil {
		return
	}
	l.unsubscribe = src.Subscribe(func(ev ports.OrderStatusEvent) { l.Apply(ev) })
}

// Stop cancela la suscripción.
func (l *Listener) Stop() {
	l.mu.Lock()
	unsub := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Apply aplica un evento. Devuelve true si cambió alguna orden local.
func (l *Listener) Apply(ev ports.OrderStatusEvent) bool {
	if l.life != nil && !l.life.Alive() {
		return false
	}
	if ev.OrderID == "" || !ev.Status.Valid() {
		metrics.PushEvents.WithLabelValues(eventName, "invalid").Inc()
		l.log.Warn().Str("id", ev.OrderID).Str("status", string(ev.Status)).Msg("evento de orden inválido")
		return false
	}
	if _, ok := l.list.Find(ev.OrderID); ok && l.opt != nil {
		l.opt.Reconcile(ev.OrderID, statusField, ev.Status)
	}
	applied := l.list.Update(ev.OrderID, func(o *entity.Order) { o.Status = ev.Status })
	if !applied {
		metrics.PushEvents.WithLabelValues(eventName, "ignored").Inc()
		return false
	}
	metrics.PushEvents.WithLabelValues(eventName, "applied").Inc()
	l.log.Debug().Str("id", ev.OrderID).Str("status", string(ev.Status)).Msg("estado de orden reconciliado")
	return true
}
