package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestCategoriesPage_CreateDerivaSlugYEtiquetas(t *testing.T) {
	repo := &fakeRepo[entity.Category]{}
	deps, _ := newDeps()
	p := usecase.NewCategoriesPage(repo, 5*time.Minute, deps)
	defer p.Close()

	_, err := p.Create(context.Background(), dto.CreateCategoryRequest{
		Nombre: "  Relojes Antiguos ",
		Orden:  2,
		Template: []dto.SpecFieldRequest{
			{Name: "peso_neto", Type: "number", Unit: "g"},
			{Name: "material", Type: "select", Options: []string{"oro", "plata"}},
		},
	})
	require.NoError(t, err)

	payload, ok := repo.lastPayload().(dto.CategoryPayload)
	require.True(t, ok)
	assert.Equal(t, "Relojes Antiguos", *payload.Nombre)
	assert.Equal(t, "relojes antiguos", *payload.Slug)
	require.Len(t, payload.Template, 2)
	assert.Equal(t, "Peso Neto", payload.Template[0].Label)
}

func TestCategoriesPage_PlantillaInvalida(t *testing.T) {
	repo := &fakeRepo[entity.Category]{}
	deps, _ := newDeps()
	p := usecase.NewCategoriesPage(repo, 5*time.Minute, deps)
	defer p.Close()

	_, err := p.Create(context.Background(), dto.CreateCategoryRequest{
		Nombre: "Arte",
		Template: []dto.SpecFieldRequest{
			{Name: "autor", Type: "text"},
			{Name: "autor", Type: "text"},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Nil(t, repo.lastPayload())
}

func TestCategoriesPage_UpdateRecalculaSlugSoloConNombre(t *testing.T) {
	repo := &fakeRepo[entity.Category]{items: []entity.Category{{ID: "c1", Nombre: "Arte", Slug: "arte"}}}
	deps, _ := newDeps()
	p := usecase.NewCategoriesPage(repo, 5*time.Minute, deps)
	defer p.Close()
	ctx := context.Background()
	p.List(ctx, dto.CategoryFilter{}, false)

	_, err := p.Update(ctx, "c1", dto.UpdateCategoryRequest{Orden: ptr(3)})
	require.NoError(t, err)
	payload := repo.lastPayload().(dto.CategoryPayload)
	assert.Nil(t, payload.Slug)

	_, err = p.Update(ctx, "c1", dto.UpdateCategoryRequest{Nombre: ptr("Arte MODERNO")})
	require.NoError(t, err)
	payload = repo.lastPayload().(dto.CategoryPayload)
	assert.Equal(t, "arte moderno", *payload.Slug)
}

func TestCategoriesPage_ToggleActivo(t *testing.T) {
	repo := &fakeRepo[entity.Category]{items: []entity.Category{{ID: "c1", Nombre: "Arte", Activo: true}}}
	deps, _ := newDeps()
	p := usecase.NewCategoriesPage(repo, 5*time.Minute, deps)
	defer p.Close()
	ctx := context.Background()
	p.List(ctx, dto.CategoryFilter{}, false)

	got, err := p.ToggleActivo(ctx, "c1", ptr(false))
	require.NoError(t, err)
	assert.False(t, got.Activo)
}
