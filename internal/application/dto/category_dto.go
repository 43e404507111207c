package dto

import (
	"net/url"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// CategoryFilter filtros del listado de categorías.
type CategoryFilter struct {
	Activo *bool `json:"activo,omitempty"`
}

// Values parámetros de query para el backend.
func (f CategoryFilter) Values() url.Values {
	v := url.Values{}
	setBool(v, "activo", f.Activo)
	return v
}

// SpecFieldRequest campo de la plantilla de especificaciones.
type SpecFieldRequest struct {
	Name     string   `json:"name" validate:"required,max=60,safetext"`
	Label    string   `json:"label,omitempty" validate:"omitempty,max=100,safetext"`
	Type     string   `json:"type" validate:"required,oneof=text number boolean select multiselect"`
	Required bool     `json:"required"`
	Unit     string   `json:"unit,omitempty" validate:"omitempty,max=20,safetext"`
	Options  []string `json:"options,omitempty" validate:"omitempty,dive,required,max=100,safetext"`
}

// CreateCategoryRequest entrada para crear una categoría. El slug se deriva del nombre.
type CreateCategoryRequest struct {
	Nombre   string             `json:"nombre" validate:"required,min=1,max=100,safetext"`
	Orden    int                `json:"orden" validate:"gte=0"`
	Activo   bool               `json:"activo"`
	Template []SpecFieldRequest `json:"especificaciones" validate:"omitempty,dive"`
}

// UpdateCategoryRequest actualización parcial de una categoría.
type UpdateCategoryRequest struct {
	Nombre   *string            `json:"nombre,omitempty" validate:"omitempty,min=1,max=100,safetext"`
	Orden    *int               `json:"orden,omitempty" validate:"omitempty,gte=0"`
	Activo   *bool              `json:"activo,omitempty"`
	Template []SpecFieldRequest `json:"especificaciones,omitempty" validate:"omitempty,dive"`
}

// CategoryPayload cuerpo que viaja al backend, con el slug ya calculado.
type CategoryPayload struct {
	Nombre   *string            `json:"nombre,omitempty"`
	Slug     *string            `json:"slug,omitempty"`
	Orden    *int               `json:"orden,omitempty"`
	Activo   *bool              `json:"activo,omitempty"`
	Template []SpecFieldRequest `json:"especificaciones,omitempty"`
}

// ToSpecFields convierte la plantilla de entrada a entidades.
func ToSpecFields(in []SpecFieldRequest) []entity.SpecField {
	if in == nil {
		return nil
	}
	out := make([]entity.SpecField, len(in))
	for i, f := range in {
		out[i] = entity.SpecField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     entity.FieldType(f.Type),
			Required: f.Required,
			Unit:     f.Unit,
			Options:  append([]string(nil), f.Options...),
		}
	}
	return out
}

// FromSpecFields convierte la plantilla preparada al formato de envío.
func FromSpecFields(in []entity.SpecField) []SpecFieldRequest {
	out := make([]SpecFieldRequest, len(in))
	for i, f := range in {
		out[i] = SpecFieldRequest{
			Name:     f.Name,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
			Unit:     f.Unit,
			Options:  f.Options,
		}
	}
	return out
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID       string             `json:"id"`
	Nombre   string             `json:"nombre"`
	Slug     string             `json:"slug"`
	Orden    int                `json:"orden"`
	Activo   bool               `json:"activo"`
	Template []SpecFieldRequest `json:"especificaciones"`
}

// CategoryListResponse lista de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToCategoryResponse mapea la entidad a la salida HTTP.
func ToCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Nombre:   c.Nombre,
		Slug:     c.Slug,
		Orden:    c.Orden,
		Activo:   c.Activo,
		Template: FromSpecFields(c.Template),
	}
}
