package wire

import (
	"strings"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// RawSpecField campo de plantilla tal como llega del backend.
type RawSpecField struct {
	Name      Text       `json:"name"`
	Nombre    Text       `json:"nombre"`
	Label     Text       `json:"label"`
	Etiqueta  Text       `json:"etiqueta"`
	Type      Text       `json:"type"`
	Tipo      Text       `json:"tipo"`
	Required  Flag       `json:"required"`
	Requerido Flag       `json:"requerido"`
	Unit      Text       `json:"unit"`
	Unidad    Text       `json:"unidad"`
	Options   StringList `json:"options"`
	Opciones  StringList `json:"opciones"`
}

// RawCategory variante de cable de una categoría.
type RawCategory struct {
	ID      ID   `json:"id"`
	MongoID ID   `json:"_id"`
	Nombre  Text `json:"nombre"`
	Name    Text `json:"name"`
	Slug    Text `json:"slug"`

	Orden Number `json:"orden"`
	Order Number `json:"order"`

	Activo Flag `json:"activo"`
	Active Flag `json:"active"`

	Especificaciones List[RawSpecField] `json:"especificaciones"`
	Template         List[RawSpecField] `json:"template"`
	Fields           List[RawSpecField] `json:"fields"`
}

// NormalizeCategory convierte la variante de cable en la entidad canónica.
// El slug siempre se recalcula desde el nombre; el slug de cable solo sirve como
// clave natural si falta el id.
func NormalizeCategory(raw RawCategory) entity.Category {
	nombre := string(first(raw.Nombre, raw.Name))
	id := string(first(raw.ID, raw.MongoID))
	if id == "" {
		id = string(first(raw.Slug, Text(entity.Slugify(nombre))))
	}

	fields := raw.Especificaciones
	if len(fields) == 0 {
		fields = raw.Template
	}
	if len(fields) == 0 {
		fields = raw.Fields
	}

	return entity.Category{
		ID:       id,
		Nombre:   nombre,
		Slug:     entity.Slugify(nombre),
		Orden:    firstNumber(raw.Orden, raw.Order).Int(),
		Activo:   activeFlag(raw.Activo, raw.Active),
		Template: normalizeTemplate(fields),
	}
}

// normalizeTemplate descarta campos sin nombre o repetidos (gana el primero),
// cambia tipos desconocidos a text y genera etiquetas faltantes.
func normalizeTemplate(raw []RawSpecField) []entity.SpecField {
	out := make([]entity.SpecField, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, rf := range raw {
		name := strings.TrimSpace(string(first(rf.Name, rf.Nombre)))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		ft := entity.FieldType(strings.ToLower(string(first(rf.Type, rf.Tipo))))
		if !ft.Valid() {
			ft = entity.FieldText
		}
		label := string(first(rf.Label, rf.Etiqueta))
		if label == "" {
			label = entity.FieldLabel(name)
		}
		var opts []string
		if ft.HasOptions() {
			opts = append([]string{}, rf.Options...)
			if len(opts) == 0 {
				opts = append(opts, rf.Opciones...)
			}
		}
		out = append(out, entity.SpecField{
			Name:     name,
			Label:    label,
			Type:     ft,
			Required: firstFlag(rf.Required, rf.Requerido).Value,
			Unit:     string(first(rf.Unit, rf.Unidad)),
			Options:  opts,
		})
	}
	return out
}

// DecodeCategory decodifica una categoría (con o sin sobre). Nunca falla.
func DecodeCategory(body []byte) entity.Category {
	return NormalizeCategory(decodeObject[RawCategory](body))
}

// DecodeCategories decodifica un listado de categorías. Nunca falla.
func DecodeCategories(body []byte) []entity.Category {
	return decodeList(body, DecodeCategory)
}
