// Package cache implementa la caché por colección con TTL e invalidación explícita.
//
// Cada colección (products, categories, orders, users) tiene su propio Store con
// su TTL. El Service es el registro que agrupa los stores: se crea una vez al
// arrancar la aplicación y se inyecta en las consultas, en lugar de estado global.
//
// Dos lecturas concurrentes de la misma clave que fallan la caché no se
// deduplican: ambas van al backend y la última escritura gana.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

// Entry valor guardado con la hora en que se guardó.
type Entry struct {
	Value    any
	StoredAt time.Time
}

// IsValid indica si la entrada sigue fresca en now para el TTL dado.
func IsValid(e Entry, now time.Time, ttl time.Duration) bool {
	if e.StoredAt.IsZero() {
		return false
	}
	return now.Sub(e.StoredAt) < ttl
}

// Store caché de una colección. Ninguna operación falla: una ausencia o una
// entrada vencida se ven igual que "nunca cacheado".
type Store struct {
	name    string
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore construye un store con su TTL. now permite inyectar el reloj (nil = time.Now).
func NewStore(name string, ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{name: name, ttl: ttl, now: now, entries: make(map[string]Entry)}
}

// Name nombre lógico de la colección.
func (s *Store) Name() string { return s.name }

// TTL duración de frescura de la colección.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get devuelve la entrada guardada, fresca o no.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Lookup devuelve el valor solo si la entrada existe y sigue fresca.
func (s *Store) Lookup(key string) (any, bool) {
	e, ok := s.Get(key)
	if !ok {
		metrics.CacheLookups.WithLabelValues(s.name, "miss").Inc()
		return nil, false
	}
	if !IsValid(e, s.now(), s.ttl) {
		metrics.CacheLookups.WithLabelValues(s.name, "stale").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(s.name, "hit").Inc()
	return e.Value, true
}

// Set guarda value con marca de tiempo actual. Sobrescribe (última escritura gana).
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = Entry{Value: value, StoredAt: s.now()}
	s.mu.Unlock()
}

// Delete elimina una clave concreta.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear vacía la colección completa.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()
}

// Len número de entradas guardadas (frescas o no).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Key deriva una clave estable de la colección y del conjunto completo de parámetros.
// Dos consultas con filtros distintos nunca comparten clave; los mapas se
// serializan con las claves ordenadas.
func Key(collection string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", collection, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", collection, hash[:16])
}
