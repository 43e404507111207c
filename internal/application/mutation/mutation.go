// Package mutation envuelve las escrituras contra el backend: nunca devuelve
// error a quien llama; el fallo se observa como resultado nil y un mensaje.
//
// Una mutación exitosa no toca la caché. Quien la llama debe invalidar la
// colección o forzar un Refetch de su consulta.
package mutation

import (
	"context"
	"sync"

	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

// Ops operaciones remotas de una colección. Las que falten se reportan como error.
type Ops[T any] struct {
	Create func(ctx context.Context, payload any) (*T, error)
	Update func(ctx context.Context, id string, payload any) (*T, error)
	Delete func(ctx context.Context, id string) error
}

// Mutation estado de las escrituras de una colección. Las llamadas concurrentes
// no se encolan ni se deduplican; Loading sirve para deshabilitar el control.
type Mutation[T any] struct {
	collection string
	ops        Ops[T]
	log        *logger.Logger

	mu       sync.Mutex
	inFlight int
	err      string
	lastErr  error
}

// New construye la mutación de una colección.
func New[T any](collection string, ops Ops[T], log *logger.Logger) *Mutation[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Mutation[T]{collection: collection, ops: ops, log: log.Component("mutation." + collection)}
}

// Create crea la entidad. nil si falló.
func (m *Mutation[T]) Create(ctx context.Context, payload any) *T {
	if m.ops.Create == nil {
		m.fail("create", errUnsupported("create"))
		return nil
	}
	m.begin()
	res, err := m.ops.Create(ctx, payload)
	return end(m, "create", "", res, err)
}

// Update actualiza la entidad id. nil si falló.
func (m *Mutation[T]) Update(ctx context.Context, id string, payload any) *T {
	if m.ops.Update == nil {
		m.fail("update", errUnsupported("update"))
		return nil
	}
	m.begin()
	res, err := m.ops.Update(ctx, id, payload)
	return end(m, "update", id, res, err)
}

// Delete elimina la entidad id. false si falló.
func (m *Mutation[T]) Delete(ctx context.Context, id string) bool {
	if m.ops.Delete == nil {
		m.fail("delete", errUnsupported("delete"))
		return false
	}
	m.begin()
	err := m.ops.Delete(ctx, id)
	var ok struct{}
	return end(m, "delete", id, &ok, err) != nil
}

// Loading indica si hay alguna llamada en curso.
func (m *Mutation[T]) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight > 0
}

// Error mensaje de la última llamada terminada; vacío si fue bien.
func (m *Mutation[T]) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// LastErr error de la última llamada terminada, para quien necesite clasificarlo.
func (m *Mutation[T]) LastErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Mutation[T]) begin() {
	m.mu.Lock()
	m.inFlight++
	m.mu.Unlock()
}

func (m *Mutation[T]) fail(op string, err error) {
	m.mu.Lock()
	m.err = err.Error()
	m.lastErr = err
	m.mu.Unlock()
	metrics.Mutations.WithLabelValues(m.collection, op, "error").Inc()
}

func end[T, R any](m *Mutation[T], op, id string, res *R, err error) *R {
	m.mu.Lock()
	m.inFlight--
	m.lastErr = err
	if err != nil {
		m.err = err.Error()
	} else {
		m.err = ""
	}
	m.mu.Unlock()

	if err != nil {
		metrics.Mutations.WithLabelValues(m.collection, op, "error").Inc()
		m.log.Error().Err(err).Str("op", op).Str("id", id).Msg("mutación fallida")
		return nil
	}
	metrics.Mutations.WithLabelValues(m.collection, op, "ok").Inc()
	m.log.Debug().Str("op", op).Str("id", id).Msg("mutación aplicada")
	return res
}

type errUnsupported string

func (e errUnsupported) Error() string { return "mutation: operación no soportada: " + string(e) }
