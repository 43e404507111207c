package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/query"
	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
)

// CategoriesPage página de categorías. El slug nunca se edita: se recalcula del nombre.
type CategoriesPage struct {
	*page[entity.Category]
}

// NewCategoriesPage construye la página de categorías.
func NewCategoriesPage(repo repository.CategoryRepository, ttl time.Duration, d Deps) *CategoriesPage {
	return &CategoriesPage{page: newPage[entity.Category](cache.Categories, ttl, repo, dto.CategoryFilter{}, d)}
}

// List devuelve las categorías; force ignora la caché.
func (p *CategoriesPage) List(ctx context.Context, f dto.CategoryFilter, force bool) query.State[entity.Category] {
	return p.load(ctx, f, force)
}

// Get devuelve la categoría de la lista local.
func (p *CategoriesPage) Get(id string) (entity.Category, error) { return p.find(id) }

// Create valida la entrada, deriva el slug y prepara la plantilla.
func (p *CategoriesPage) Create(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tpl, err := prepareTemplate(in.Template)
	if err != nil {
		return nil, err
	}
	c := entity.Category{Orden: in.Orden, Activo: in.Activo}
	c.Rename(in.Nombre)
	return p.create(ctx, dto.CategoryPayload{
		Nombre:   &c.Nombre,
		Slug:     &c.Slug,
		Orden:    &c.Orden,
		Activo:   &c.Activo,
		Template: tpl,
	})
}

// Update aplica una actualización parcial. Si cambia el nombre, el slug viaja recalculado.
func (p *CategoriesPage) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*entity.Category, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	payload := dto.CategoryPayload{Orden: in.Orden, Activo: in.Activo}
	if in.Nombre != nil {
		var c entity.Category
		c.Rename(*in.Nombre)
		payload.Nombre, payload.Slug = &c.Nombre, &c.Slug
	}
	if in.Template != nil {
		tpl, err := prepareTemplate(in.Template)
		if err != nil {
			return nil, err
		}
		payload.Template = tpl
	}
	return p.update(ctx, id, payload)
}

func prepareTemplate(in []dto.SpecFieldRequest) ([]dto.SpecFieldRequest, error) {
	if in == nil {
		return nil, nil
	}
	fields := dto.ToSpecFields(in)
	if err := entity.ValidateTemplate(fields); err != nil {
		return nil, err
	}
	return dto.FromSpecFields(entity.PrepareTemplate(fields)), nil
}

// Delete elimina una categoría.
func (p *CategoriesPage) Delete(ctx context.Context, id string) error { return p.remove(ctx, id) }

var categoryActivo = field[entity.Category, bool]{
	name: "activo",
	get:  func(c entity.Category) bool { return c.Activo },
	set:  func(c *entity.Category, v bool) { c.Activo = v },
}

// ToggleActivo cambia activo de forma optimista. value nil invierte el valor actual.
func (p *CategoriesPage) ToggleActivo(ctx context.Context, id string, value *bool) (entity.Category, error) {
	cur, err := p.lookup(ctx, id)
	if err != nil {
		return cur, err
	}
	next := !cur.Activo
	if value != nil {
		next = *value
	}
	return change(ctx, p.page, id, categoryActivo, next, map[string]bool{"activo": next})
}

// Close desmonta la página.
func (p *CategoriesPage) Close() { p.close() }
