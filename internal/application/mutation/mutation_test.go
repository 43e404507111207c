package mutation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/mutation"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

func TestMutation_CreateOK(t *testing.T) {
	m := mutation.New[entity.Product]("products", mutation.Ops[entity.Product]{
		Create: func(_ context.Context, payload any) (*entity.Product, error) {
			return &entity.Product{ID: "p4", Title: payload.(string)}, nil
		},
	}, nil)

	got := m.Create(context.Background(), "Reloj")
	require.NotNil(t, got)
	assert.Equal(t, "p4", got.ID)
	assert.Empty(t, m.Error())
	assert.False(t, m.Loading())
}

func TestMutation_FalloDevuelveNil(t *testing.T) {
	m := mutation.New[entity.Product]("products", mutation.Ops[entity.Product]{
		Update: func(context.Context, string, any) (*entity.Product, error) {
			return nil, errors.New("Error 500: Internal Server Error")
		},
	}, nil)

	assert.Nil(t, m.Update(context.Background(), "p1", nil))
	assert.Equal(t, "Error 500: Internal Server Error", m.Error())
}

func TestMutation_ErrorSeLimpiaTrasExito(t *testing.T) {
	fail := true
	m := mutation.New[entity.User]("users", mutation.Ops[entity.User]{
		Delete: func(context.Context, string) error {
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	}, nil)

	assert.False(t, m.Delete(context.Background(), "u1"))
	assert.NotEmpty(t, m.Error())
	fail = false
	assert.True(t, m.Delete(context.Background(), "u1"))
	assert.Empty(t, m.Error())
}

func TestMutation_OperacionNoSoportada(t *testing.T) {
	m := mutation.New[entity.Category]("categories", mutation.Ops[entity.Category]{}, nil)
	assert.Nil(t, m.Create(context.Background(), nil))
	assert.False(t, m.Delete(context.Background(), "c1"))
	assert.Contains(t, m.Error(), "no soportada")
}

func TestMutation_LoadingDuranteLaLlamada(t *testing.T) {
	var m *mutation.Mutation[entity.Order]
	var during bool
	m = mutation.New[entity.Order]("orders", mutation.Ops[entity.Order]{
		Update: func(context.Context, string, any) (*entity.Order, error) {
			during = m.Loading()
			return &entity.Order{ID: "o1"}, nil
		},
	}, nil)

	m.Update(context.Background(), "o1", nil)
	assert.True(t, during)
	assert.False(t, m.Loading())
}
