package dto

import (
	"net/url"
	"strconv"
)

// Paginación por defecto y máxima de los listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `json:"page,omitempty" query:"page"`
	Limit int `json:"limit,omitempty" query:"limit"`
}

// Normalize acota Page y Limit a valores válidos. Cero significa "sin paginar".
func (p *PageRequest) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p PageRequest) apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page      int  `json:"page,omitempty"`
	Limit     int  `json:"limit,omitempty"`
	Total     int  `json:"total"`
	FromCache bool `json:"from_cache"`
}

// ToggleRequest cuerpo de los PATCH de banderas. Sin Value se invierte el valor actual.
type ToggleRequest struct {
	Value *bool `json:"value"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo viene en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// setString agrega key solo si s no está vacío: un filtro ausente nunca viaja como texto.
func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}
