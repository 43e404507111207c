package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/subastas-admin/pkg/metrics"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

// Nombres lógicos de las colecciones cacheadas.
const (
	Products   = "products"
	Categories = "categories"
	Orders     = "orders"
	Users      = "users"
)

// Service registro de stores por nombre lógico. Se crea una vez en el arranque.
type Service struct {
	mu     sync.RWMutex
	stores map[string]*Store
	now    func() time.Time
	log    *logger.Logger
}

// NewService construye el registro vacío. now nil usa time.Now.
func NewService(log *logger.Logger, now func() time.Time) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{stores: make(map[string]*Store), now: now, log: log}
}

// Register crea (o devuelve, si ya existe) el store de una colección con su TTL.
func (s *Service) Register(name string, ttl time.Duration) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores[name]; ok {
		return st
	}
	st := NewStore(name, ttl, s.now)
	s.stores[name] = st
	return st
}

// Store devuelve el store registrado con ese nombre.
func (s *Service) Store(name string) (*Store, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stores[name]
	return st, ok
}

// Invalidate vacía la colección de forma síncrona; la próxima lectura irá al
// backend aunque le quede TTL. Nombres desconocidos se ignoran.
func (s *Service) Invalidate(name string) {
	st, ok := s.Store(name)
	if !ok {
		return
	}
	st.Clear()
	metrics.CacheInvalidations.WithLabelValues(name).Inc()
	s.log.Debug().Str("collection", name).Msg("caché invalidada")
}

// InvalidateAll vacía todas las colecciones.
func (s *Service) InvalidateAll() {
	for _, name := range s.Names() {
		s.Invalidate(name)
	}
}

// Names nombres registrados en orden alfabético.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.stores))
	for n := range s.stores {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
