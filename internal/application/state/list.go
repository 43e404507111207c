// Package state contiene el estado local de las páginas del panel: instantáneas
// de listas derivadas de la caché (nunca el mismo objeto), la bandera de vida de
// la página y los avisos visibles.
package state

import "sync"

// Item entidad que puede vivir en una lista local.
type Item[T any] interface {
	Key() string
	Clone() T
}

// List instantánea local de una colección. Modificarla nunca toca la caché.
type List[T Item[T]] struct {
	mu    sync.RWMutex
	items []T
}

// NewList construye una lista vacía.
func NewList[T Item[T]]() *List[T] {
	return &List[T]{}
}

// Replace sustituye el contenido completo por copias de items.
func (l *List[T]) Replace(items []T) {
	cp := cloneAll(items)
	l.mu.Lock()
	l.items = cp
	l.mu.Unlock()
}

// Items devuelve una copia del contenido actual.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.items)
}

// Len número de elementos.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Find devuelve una copia del elemento con ese id.
func (l *List[T]) Find(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, it := range l.items {
		if it.Key() == id {
			return it.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// Add incorpora una copia de item si su id no está en la lista. false si ya estaba.
func (l *List[T]) Add(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if it.Key() == item.Key() {
			return false
		}
	}
	l.items = append(l.items, item.Clone())
	return true
}

// Update aplica fn sobre el elemento con ese id, en sitio. false si no existe.
func (l *List[T]) Update(id string, fn func(*T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == id {
			fn(&l.items[i])
			return true
		}
	}
	return false
}

// Remove quita el elemento con ese id. false si no existe.
func (l *List[T]) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func cloneAll[T Item[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
