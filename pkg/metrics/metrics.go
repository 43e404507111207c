// Package metrics define los colectores Prometheus del panel. Los contadores
// funcionan aunque no se registren; Register los publica en un registro concreto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CacheLookups resultado de cada consulta a la caché (hit, miss, stale).
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_cache_lookups_total",
		Help: "Consultas a la caché por colección y resultado.",
	}, []string{"collection", "result"})

	// CacheInvalidations invalidaciones explícitas por colección.
	CacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_cache_invalidations_total",
		Help: "Invalidaciones explícitas de caché por colección.",
	}, []string{"collection"})

	// Mutations llamadas de creación/actualización/borrado contra el backend.
	Mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_mutations_total",
		Help: "Mutaciones por colección, operación y resultado.",
	}, []string{"collection", "op", "result"})

	// OptimisticRollbacks cambios optimistas revertidos por fallo.
	OptimisticRollbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_optimistic_rollbacks_total",
		Help: "Cambios optimistas revertidos por colección.",
	}, []string{"collection"})

	// PushEvents eventos recibidos por el canal push.
	PushEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_push_events_total",
		Help: "Eventos push por tipo y resultado (applied, ignored, invalid).",
	}, []string{"event", "result"})

	// RemoteBreakerState estado del circuit breaker del cliente REST (0 cerrado, 1 semiabierto, 2 abierto).
	RemoteBreakerState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "admin_remote_breaker_state",
		Help: "Estado del circuit breaker del backend REST.",
	})
)

// Register publica todos los colectores en reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		CacheLookups, CacheInvalidations, Mutations, OptimisticRollbacks, PushEvents, RemoteBreakerState,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
