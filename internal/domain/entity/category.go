package entity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/subastas-admin/internal/domain"
)

// FieldType tipo de un campo de la plantilla de especificaciones.
type FieldType string

// Tipos válidos de campo.
const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldBoolean     FieldType = "boolean"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
)

// Valid indica si el tipo pertenece al enum.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldBoolean, FieldSelect, FieldMultiselect:
		return true
	}
	return false
}

// HasOptions indica si el tipo necesita lista de opciones.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldMultiselect
}

// SpecField descriptor de un campo de la plantilla de una categoría.
type SpecField struct {
	Name     string
	Label    string // generada a partir de Name
	Type     FieldType
	Required bool
	Unit     string
	Options  []string
}

// Category representa una categoría de productos.
// Invariante: Slug == Slugify(Nombre) siempre; no se edita por separado.
type Category struct {
	ID       string
	Nombre   string
	Slug     string
	Orden    int
	Activo   bool
	Template []SpecField
}

// Key identidad usada por el estado local.
func (c Category) Key() string { return c.ID }

// Clone devuelve una copia profunda de la plantilla.
func (c Category) Clone() Category {
	if c.Template != nil {
		tpl := make([]SpecField, len(c.Template))
		for i, f := range c.Template {
			if f.Options != nil {
				f.Options = append([]string(nil), f.Options...)
			}
			tpl[i] = f
		}
		c.Template = tpl
	}
	return c
}

// Rename cambia el nombre y recalcula el slug.
func (c *Category) Rename(nombre string) {
	c.Nombre = strings.TrimSpace(nombre)
	c.Slug = Slugify(nombre)
}

// Slugify deriva el slug de un nombre: minúsculas y sin espacios en los extremos.
// Es pura e idempotente: Slugify(Slugify(s)) == Slugify(s).
func Slugify(nombre string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(nombre))
}

// FieldLabel genera la etiqueta visible de un campo: "peso_neto" -> "Peso Neto".
func FieldLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	return cases.Title(language.Spanish).String(strings.Join(words, " "))
}

// ValidateTemplate comprueba una plantilla enviada desde un formulario:
// nombres no vacíos y únicos, tipos del enum y opciones en select/multiselect.
func ValidateTemplate(fields []SpecField) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("%w: campo %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: campo %q repetido", domain.ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		if !f.Type.Valid() {
			return fmt.Errorf("%w: tipo %q no soportado en %q", domain.ErrInvalidInput, f.Type, name)
		}
		if f.Type.HasOptions() && len(f.Options) == 0 {
			return fmt.Errorf("%w: %q necesita opciones", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// PrepareTemplate recorta nombres y genera las etiquetas que falten.
// No valida; llamar antes ValidateTemplate.
func PrepareTemplate(fields []SpecField) []SpecField {
	out := make([]SpecField, 0, len(fields))
	for _, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		if strings.TrimSpace(f.Label) == "" {
			f.Label = FieldLabel(f.Name)
		}
		if !f.Type.HasOptions() {
			f.Options = nil
		}
		out = append(out, f)
	}
	return out
}
